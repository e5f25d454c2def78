package main

import (
	"context"
	"fmt"
	"log"

	"github.com/saisubham-29/medrag"
	"github.com/saisubham-29/medrag/helper"
	"github.com/saisubham-29/medrag/model"
)

var corpus = []string{
	"Hemoglobin (Hb) normal range: 13.5-17.5 g/dL for men, 12.0-15.5 g/dL for women. Low hemoglobin indicates anemia, which can cause fatigue and weakness.",
	"Blood glucose fasting normal range: 70-100 mg/dL. Values 100-125 mg/dL indicate prediabetes. Above 126 mg/dL indicates diabetes.",
	"White blood cell count normal: 4,000-11,000 cells/mcL. Elevated WBC may indicate infection or inflammation.",
	"Thyroid TSH normal range: 0.4-4.0 mIU/L. High TSH indicates hypothyroidism, low TSH indicates hyperthyroidism.",
}

// Vector walkthrough: pgvector-backed retrieval with local ONNX
// embeddings against a throwaway PostgreSQL container. First run
// downloads the embedding model into ./models.
func main() {
	ctx := context.Background()

	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(ctx)

	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	system, err := medrag.NewSystem(&medrag.Config{
		Database: dbConfig,
		Offline:  true,
	})
	if err != nil {
		log.Fatalf("Failed to create system: %v", err)
	}
	defer system.Close()

	fmt.Println("Indexing medical references...")
	if err := system.InitializeKnowledgeBase(ctx, corpus); err != nil {
		log.Fatalf("Failed to initialize knowledge base: %v", err)
	}

	patient := &model.PatientContext{
		Age:             60,
		MedicalLiteracy: model.LiteracyMedium,
	}

	answer, err := system.AnswerQuestion(ctx, "is a TSH of 5.1 mIU/L too high", patient)
	if err != nil {
		log.Fatalf("Failed to answer question: %v", err)
	}

	fmt.Printf("Answer:\n%v\n", answer.Text)
	fmt.Printf("Confidence: %.2f\n", answer.Confidence)
	fmt.Printf("Sources: %v\n", answer.SourcesUsed)
}
