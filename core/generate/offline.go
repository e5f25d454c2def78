package generate

import (
	"fmt"
	"strings"

	"github.com/saisubham-29/medrag/model"
)

const offlinePenalty = 0.15

// offlineExplanation renders a deterministic explanation from the
// retrieved passages only. Each finding is paired with its best matching
// passage by keyword overlap, or the fixed unclear note when nothing
// matches.
func (g *Generator) offlineExplanation(findings []*model.Finding, results []*model.RetrievalResult, patient *model.PatientContext) (string, float64, []string) {
	var lines []string
	var uncertainties []string

	lines = append(lines, "Offline mode: using retrieved medical knowledge only; no external LLM calls were made.")
	lines = append(lines, fmt.Sprintf("Patient context: age %d; conditions: %s.", patient.Age, conditionsText(patient)))

	for _, finding := range findings {
		valueText := "Value observed"
		if finding.Value != "" && finding.NormalRange != "" {
			valueText = fmt.Sprintf("Value %s (normal %s)", finding.Value, finding.NormalRange)
		}
		lines = append(lines, fmt.Sprintf("%s: %s. Severity: %s.", finding.Finding, valueText, finding.Severity))

		matched := bestResult(finding.Finding, results)
		if matched != "" {
			lines = append(lines, "Related knowledge: "+matched)
		} else {
			lines = append(lines, UnclearNote)
			uncertainties = append(uncertainties, UnclearNote)
		}
	}

	confidence := confidenceScore(results, len(uncertainties), offlinePenalty) * 0.8

	return strings.Join(lines, "\n"), confidence, uncertainties
}

// offlineAnswer renders a deterministic answer listing the retrieved
// passages.
func (g *Generator) offlineAnswer(question string, results []*model.RetrievalResult, patient *model.PatientContext) (string, float64, []string) {
	var lines []string
	var uncertainties []string

	lines = append(lines, "Offline mode: using retrieved medical knowledge only; no external LLM calls were made.")
	lines = append(lines, "Question: "+question)
	lines = append(lines, fmt.Sprintf("Patient context: age %d; conditions: %s.", patient.Age, conditionsText(patient)))

	if len(results) > 0 {
		lines = append(lines, "Relevant knowledge:")
		for _, r := range results {
			lines = append(lines, "- "+r.Content)
		}
	} else {
		lines = append(lines, UnclearNote)
		uncertainties = append(uncertainties, UnclearNote)
	}

	confidence := confidenceScore(results, len(uncertainties), offlinePenalty) * 0.8

	return strings.Join(lines, "\n"), confidence, uncertainties
}

// bestResult picks the retrieved passage sharing the most tokens with the
// finding text. Returns empty when there is no overlap at all.
func bestResult(findingText string, results []*model.RetrievalResult) string {
	findingTerms := tokenPattern.FindAllString(strings.ToLower(findingText), -1)
	if len(findingTerms) == 0 {
		return ""
	}

	termSet := make(map[string]struct{}, len(findingTerms))
	for _, term := range findingTerms {
		termSet[term] = struct{}{}
	}

	best := ""
	bestOverlap := 0
	for _, r := range results {
		overlap := 0
		seen := make(map[string]struct{})
		for _, term := range tokenPattern.FindAllString(strings.ToLower(r.Content), -1) {
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			if _, ok := termSet[term]; ok {
				overlap++
			}
		}
		if overlap > bestOverlap {
			bestOverlap = overlap
			best = r.Content
		}
	}
	return best
}
