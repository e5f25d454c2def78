package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/saisubham-29/medrag"
	"github.com/saisubham-29/medrag/core/generate"
	"github.com/saisubham-29/medrag/helper"
)

const (
	defaultGroqModel   = "llama-3.3-70b-versatile"
	defaultOpenAIModel = "gpt-3.5-turbo"
)

var useDatabase bool

// sampleCorpus is the built-in medical knowledge base used by the demo
// and as a default corpus when none is supplied.
var sampleCorpus = []string{
	"Hemoglobin (Hb) normal range: 13.5-17.5 g/dL for men, 12.0-15.5 g/dL for women. Low hemoglobin indicates anemia, which can cause fatigue and weakness.",
	"Blood glucose fasting normal range: 70-100 mg/dL. Values 100-125 mg/dL indicate prediabetes. Above 126 mg/dL indicates diabetes.",
	"Total cholesterol normal: below 200 mg/dL. 200-239 mg/dL is borderline high. Above 240 mg/dL is high and increases heart disease risk.",
	"Blood pressure normal: systolic below 120 mmHg and diastolic below 80 mmHg. Hypertension is diagnosed at 130/80 mmHg or higher.",
	"Creatinine normal range: 0.7-1.3 mg/dL for men, 0.6-1.1 mg/dL for women. Elevated creatinine may indicate kidney dysfunction.",
	"White blood cell count normal: 4,000-11,000 cells/mcL. Elevated WBC may indicate infection or inflammation.",
	"Thyroid TSH normal range: 0.4-4.0 mIU/L. High TSH indicates hypothyroidism, low TSH indicates hyperthyroidism.",
	"Liver enzyme ALT normal: 7-56 units/L. Elevated ALT indicates liver damage or inflammation.",
	"HbA1c normal: below 5.7%. 5.7-6.4% indicates prediabetes. 6.5% or higher indicates diabetes.",
	"Vitamin D sufficient: above 30 ng/mL. 20-30 ng/mL is insufficient. Below 20 ng/mL is deficient.",
}

// offlineRequested reports whether LLM_OFFLINE asks for the deterministic
// offline generator.
func offlineRequested() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LLM_OFFLINE"))) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// resolveComplete picks the completion backend from the environment.
// Groq wins over OpenAI unless LLM_PROVIDER says otherwise. Returns nil
// in offline mode.
func resolveComplete() (generate.CompleteFunc, error) {
	if offlineRequested() {
		return nil, nil
	}

	provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	groqKey := os.Getenv("GROQ_API_KEY")
	openaiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("LLM_MODEL")

	var apiKey, baseURL string
	switch {
	case provider == "groq" || (groqKey != "" && openaiKey == ""):
		apiKey = groqKey
		baseURL = os.Getenv("GROQ_BASE_URL")
		if baseURL == "" {
			baseURL = generate.GroqBaseURL
		}
		if model == "" {
			model = defaultGroqModel
		}
	case openaiKey != "":
		apiKey = openaiKey
		baseURL = os.Getenv("OPENAI_BASE_URL")
		if model == "" {
			model = defaultOpenAIModel
		}
	default:
		return nil, fmt.Errorf("set GROQ_API_KEY or OPENAI_API_KEY, or LLM_OFFLINE=true")
	}

	return generate.NewOpenAIComplete(apiKey, baseURL, model)
}

// newSystem loads .env and builds the system. With --db the pgvector
// index is used, configured through the DB_* environment variables.
func newSystem() (*medrag.System, error) {
	// Missing .env is fine, plain environment variables still apply
	_ = godotenv.Overload()

	complete, err := resolveComplete()
	if err != nil {
		return nil, err
	}

	config := &medrag.Config{
		Complete: complete,
		Offline:  offlineRequested(),
	}

	if useDatabase {
		dbConfig, err := helper.NewDatabaseConfiguration()
		if err != nil {
			return nil, helper.NewError("database configuration", err)
		}
		config.Database = dbConfig
	}

	return medrag.NewSystem(config)
}
