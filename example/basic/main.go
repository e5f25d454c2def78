package main

import (
	"context"
	"fmt"
	"log"

	"github.com/saisubham-29/medrag"
	"github.com/saisubham-29/medrag/model"
)

var corpus = []string{
	"Hemoglobin (Hb) normal range: 13.5-17.5 g/dL for men, 12.0-15.5 g/dL for women. Low hemoglobin indicates anemia, which can cause fatigue and weakness.",
	"Blood glucose fasting normal range: 70-100 mg/dL. Values 100-125 mg/dL indicate prediabetes. Above 126 mg/dL indicates diabetes.",
	"Total cholesterol normal: below 200 mg/dL. 200-239 mg/dL is borderline high. Above 240 mg/dL is high and increases heart disease risk.",
}

const report = `Hemoglobin: 10.2 (13.5-17.5)
Blood Glucose Fasting: 118 (70-100)
Impression: Shows elevated glucose levels. Hemoglobin is below normal range indicating possible anemia.`

// Offline walkthrough: in-memory lexical retrieval, deterministic
// templated generation, no database and no LLM backend.
func main() {
	ctx := context.Background()

	system, err := medrag.NewSystem(&medrag.Config{Offline: true})
	if err != nil {
		log.Fatalf("Failed to create system: %v", err)
	}
	defer system.Close()

	if err := system.InitializeKnowledgeBase(ctx, corpus); err != nil {
		log.Fatalf("Failed to initialize knowledge base: %v", err)
	}

	patient := &model.PatientContext{
		Age:                45,
		MedicalLiteracy:    model.LiteracyLow,
		ExistingConditions: []string{"diabetes"},
	}

	output, reportID, err := system.ProcessReport(ctx, report, patient)
	if err != nil {
		log.Fatalf("Failed to process report: %v", err)
	}

	fmt.Printf("Summary: %v\n", output.Summary)
	fmt.Printf("Confidence: %.2f\n", output.ConfidenceScore)
	fmt.Printf("Explanation:\n%v\n", output.PersonalizedExplanation)

	if output.RequiresDoctorReview {
		fmt.Printf("Queued for doctor review as %v\n", reportID)
	}

	answer, err := system.AnswerQuestion(ctx, "what is a normal fasting glucose level", patient)
	if err != nil {
		log.Fatalf("Failed to answer question: %v", err)
	}
	fmt.Printf("\nAnswer:\n%v\n", answer.Text)
}
