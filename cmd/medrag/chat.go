package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saisubham-29/medrag/model"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive Q&A against the medical knowledge base",
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
		}

		divider := strings.Repeat("=", 60)
		fmt.Printf("\n%v\nINTERACTIVE Q&A (type 'exit' to quit)\n%v\n", divider, divider)

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("\nQuestion> ")
			if !scanner.Scan() {
				break
			}
			question := strings.TrimSpace(scanner.Text())
			if question == "" {
				continue
			}
			if question == "exit" || question == "quit" {
				break
			}

			answer, err := system.AnswerQuestion(ctx, question, patient)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}

			fmt.Printf("\nANSWER:\n%v\n", answer.Text)
			fmt.Printf("\nCONFIDENCE: %.2f%%\n", answer.Confidence*100)
			if len(answer.Uncertainties) > 0 {
				fmt.Println("UNCERTAINTIES:")
				for _, note := range answer.Uncertainties {
					fmt.Printf("  ! %v\n", note)
				}
			}
			if len(answer.SourcesUsed) > 0 {
				fmt.Printf("SOURCES USED: %d medical references\n", len(answer.SourcesUsed))
			}
		}

		return scanner.Err()
	},
}
