package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/saisubham-29/medrag/model"
)

const sampleReport = `Patient Blood Test Results:

Hemoglobin: 10.2 (13.5-17.5)
Blood Glucose Fasting: 118 (70-100)
Total Cholesterol: 245 (below 200)
Creatinine: 1.1 (0.7-1.3)
White Blood Cell Count: 12500 (4000-11000)

Impression: Shows elevated glucose levels. Cholesterol is high.
Hemoglobin is below normal range indicating possible anemia.
WBC count slightly elevated, may indicate mild infection.`

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Process a sample blood test report end to end",
	RunE: func(cmd *cobra.Command, args []string) error {
		system, err := newSystem()
		if err != nil {
			return err
		}
		defer system.Close()

		ctx := cmd.Context()
		err = system.InitializeKnowledgeBase(ctx, sampleCorpus)
		if err != nil {
			return err
		}

		patient := &model.PatientContext{
			Age:                55,
			MedicalLiteracy:    model.LiteracyMedium,
			ExistingConditions: []string{"Type 2 Diabetes"},
			LanguagePreference: "simple",
		}

		divider := strings.Repeat("=", 60)
		fmt.Printf("\n%v\nPROCESSING MEDICAL REPORT\n%v\n", divider, divider)

		output, reportID, err := system.ProcessReport(ctx, sampleReport, patient)
		if err != nil {
			return err
		}

		fmt.Printf("\nSUMMARY: %v\n", output.Summary)
		fmt.Printf("CONFIDENCE: %.2f%%\n", output.ConfidenceScore*100)

		fmt.Printf("\nFINDINGS (%d):\n", len(output.Findings))
		for _, f := range output.Findings {
			fmt.Printf("  [%v] %v\n", strings.ToUpper(string(f.Severity)), f.Finding)
			if f.Value != "" {
				fmt.Printf("    Value: %v (Normal: %v)\n", f.Value, f.NormalRange)
			}
		}

		fmt.Printf("\nPERSONALIZED EXPLANATION:\n%v\n", output.PersonalizedExplanation)

		if len(output.UncertaintyNotes) > 0 {
			fmt.Printf("\nUNCERTAINTIES:\n")
			for _, note := range output.UncertaintyNotes {
				fmt.Printf("  ! %v\n", note)
			}
		}

		fmt.Printf("\nSOURCES USED: %d medical references\n", len(output.SourcesUsed))

		if output.RequiresDoctorReview {
			fmt.Println("\n[Simulating doctor review...]")
			_, err = system.Reviews.Verify(reportID, true,
				"AI explanation is accurate. Patient should follow up for anemia treatment and diabetes management.")
			if err != nil {
				return err
			}
			color.Green("\nReport verified and ready for patient delivery")
		}

		return nil
	},
}
