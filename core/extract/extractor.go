// Package extract turns unstructured report text into structured findings.
// Extraction is a total function: malformed text yields fewer findings, never
// an error.
package extract

import (
	"regexp"
	"strings"

	"github.com/saisubham-29/medrag/model"
)

// Extraction-method confidences, fixed per category.
const (
	labValueConfidence  = 0.85
	narrativeConfidence = 0.75
)

// labValuePattern matches "Label: 12.3 (1.0-2.0)" with an optional range.
var labValuePattern = regexp.MustCompile(`([A-Za-z\s]+):\s*([0-9.]+)\s*(?:\(([0-9.\-\s]+)\))?`)

// narrativeTriggers mark sentences that carry an observation.
var narrativeTriggers = []string{"shows", "indicates", "reveals"}

// severityKeywords are checked in priority order: a critical keyword wins over
// an attention keyword, which wins over a normal keyword.
var severityKeywords = []struct {
	severity model.Severity
	keywords []string
}{
	{model.SeverityCritical, []string{"critical", "severe", "urgent", "emergency", "abnormal"}},
	{model.SeverityAttention, []string{"elevated", "high", "low", "borderline", "concern"}},
	{model.SeverityNormal, []string{"normal", "within range", "stable"}},
}

// Extractor parses report text into structured findings.
type Extractor struct{}

// NewExtractor creates a new report extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Findings extracts structured findings from report text: first labeled lab
// values, then narrative observations, each in document order.
func (e *Extractor) Findings(reportText string) []*model.Finding {
	var findings []*model.Finding

	// Labeled-value pass: Test Name: Value (Range)
	for _, match := range labValuePattern.FindAllStringSubmatch(reportText, -1) {
		label, value, normalRange := match[1], match[2], match[3]

		findings = append(findings, &model.Finding{
			Category:    model.CategoryLabTest,
			Finding:     strings.TrimSpace(label),
			Value:       value,
			NormalRange: normalRange,
			Severity:    determineSeverity(reportText, label),
			Confidence:  labValueConfidence,
		})
	}

	// Narrative pass: sentences carrying an observation trigger word
	for _, sentence := range strings.Split(reportText, ".") {
		if !containsTrigger(sentence) {
			continue
		}
		findings = append(findings, &model.Finding{
			Category:   model.CategoryObservation,
			Finding:    strings.TrimSpace(sentence),
			Severity:   determineSeverity(sentence, ""),
			Confidence: narrativeConfidence,
		})
	}

	return findings
}

func containsTrigger(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, trigger := range narrativeTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

// determineSeverity scans text plus context for severity keywords and returns
// the highest-priority match, defaulting to normal.
func determineSeverity(text string, context string) model.Severity {
	lower := strings.ToLower(text + " " + context)

	for _, set := range severityKeywords {
		for _, keyword := range set.keywords {
			if strings.Contains(lower, keyword) {
				return set.severity
			}
		}
	}
	return model.SeverityNormal
}
