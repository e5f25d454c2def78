package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/saisubham-29/medrag/core/extract"
	"github.com/saisubham-29/medrag/core/retrieval"
	"github.com/saisubham-29/medrag/helper"
	"github.com/saisubham-29/medrag/model"
)

const (
	// RetrievalK is the number of passages retrieved per request.
	RetrievalK = 3

	// ReviewThreshold is the confidence below which an explanation is
	// routed to doctor review.
	ReviewThreshold = 0.7

	reportTemperature   = 0.3
	questionTemperature = 0.2

	systemPrompt = "You are a medical explanation assistant. Only use provided sources. Mark uncertainties clearly."

	// UnclearNote is stated verbatim whenever the knowledge base cannot
	// ground a statement.
	UnclearNote = "This is unclear from available information"
)

// Message is a single chat message sent to the completion backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompleteFunc is the external generation contract. Implementations call
// an LLM backend and return the raw completion text.
type CompleteFunc func(ctx context.Context, system string, messages []Message, temperature float32) (string, error)

var uncertaintyMarkers = []string{"unclear", "uncertain", "may", "might", "possibly", "not enough information"}

var literacyMap = map[model.Literacy]string{
	model.LiteracyLow:    "very simple terms, avoid medical jargon",
	model.LiteracyMedium: "clear language with some medical terms explained",
	model.LiteracyHigh:   "technical medical terminology is acceptable",
}

// Generator produces grounded explanations and answers. It composes the
// finding extractor, the retrieval index and a completion capability.
// With Offline set it never calls the completion backend and instead
// renders deterministic templated output from the retrieved passages.
type Generator struct {
	Extractor *extract.Extractor
	Index     retrieval.Index
	Complete  CompleteFunc
	Offline   bool
}

// NewGenerator creates a generator over the given index. complete may be
// nil only if offline is true.
func NewGenerator(index retrieval.Index, complete CompleteFunc, offline bool) (*Generator, error) {
	if index == nil {
		return nil, helper.NewError("generator validation", fmt.Errorf("retrieval index is nil"))
	}
	if complete == nil && !offline {
		return nil, ErrNotConfigured
	}
	return &Generator{
		Extractor: extract.NewExtractor(),
		Index:     index,
		Complete:  complete,
		Offline:   offline,
	}, nil
}

// Explain processes a medical report end to end: extract findings,
// retrieve grounding passages, generate a personalized explanation and
// decide whether doctor review is required.
func (g *Generator) Explain(ctx context.Context, reportText string, patient *model.PatientContext) (*model.ExplanationOutput, error) {
	err := patient.Validate()
	if err != nil {
		return nil, helper.NewError("patient validation", err)
	}

	findings := g.Extractor.Findings(reportText)

	results, err := g.Index.Retrieve(ctx, reportText, RetrievalK)
	if err != nil {
		return nil, helper.NewError("retrieve", err)
	}

	var explanation string
	var uncertainties []string
	var confidence float64

	if g.Offline {
		explanation, confidence, uncertainties = g.offlineExplanation(findings, results, patient)
	} else {
		if g.Complete == nil {
			return nil, ErrNotConfigured
		}

		prompt := buildReportPrompt(reportText, findings, results, patient)
		explanation, err = g.Complete(ctx, systemPrompt, []Message{{Role: "user", Content: prompt}}, reportTemperature)
		if err != nil {
			return nil, &GenerationError{Task: "explain report", Err: err}
		}

		uncertainties = ExtractUncertainties(explanation)
		confidence = confidenceScore(results, len(uncertainties), 0.1)
	}

	return &model.ExplanationOutput{
		Summary:                 Summary(findings),
		Findings:                findings,
		PersonalizedExplanation: explanation,
		UncertaintyNotes:        uncertainties,
		ConfidenceScore:         confidence,
		SourcesUsed:             model.SourceIDs(results),
		RequiresDoctorReview:    model.HasCritical(findings) || confidence < ReviewThreshold,
	}, nil
}

// Answer answers a free-form question using only the retrieved knowledge
// base. Out-of-scope questions get a fixed deflection, not an error.
func (g *Generator) Answer(ctx context.Context, question string, patient *model.PatientContext) (*model.Answer, error) {
	err := patient.Validate()
	if err != nil {
		return nil, helper.NewError("patient validation", err)
	}

	if !IsMedicalQuestion(question) {
		return &model.Answer{
			Text:          OutOfScopeDeflection,
			Confidence:    0,
			SourcesUsed:   []string{},
			Uncertainties: []string{OutOfScopeNote},
		}, nil
	}

	results, err := g.Index.Retrieve(ctx, question, RetrievalK)
	if err != nil {
		return nil, helper.NewError("retrieve", err)
	}

	var text string
	var uncertainties []string
	var confidence float64

	if g.Offline {
		text, confidence, uncertainties = g.offlineAnswer(question, results, patient)
	} else {
		if g.Complete == nil {
			return nil, ErrNotConfigured
		}

		prompt := buildQuestionPrompt(question, results, patient)
		text, err = g.Complete(ctx, systemPrompt, []Message{{Role: "user", Content: prompt}}, questionTemperature)
		if err != nil {
			return nil, &GenerationError{Task: "answer question", Err: err}
		}

		uncertainties = ExtractUncertainties(text)
		confidence = confidenceScore(results, len(uncertainties), 0.1)
	}

	return &model.Answer{
		Text:          text,
		Confidence:    confidence,
		SourcesUsed:   model.SourceIDs(results),
		Uncertainties: uncertainties,
	}, nil
}

func buildReportPrompt(report string, findings []*model.Finding, results []*model.RetrievalResult, patient *model.PatientContext) string {
	contextLines := make([]string, 0, len(results))
	for _, r := range results {
		contextLines = append(contextLines, "- "+r.Content)
	}

	findingLines := make([]string, 0, len(findings))
	for _, f := range findings {
		value := f.Value
		if value == "" {
			value = "observed"
		}
		findingLines = append(findingLines, fmt.Sprintf("- %s: %s (%s)", f.Finding, value, f.Severity))
	}

	literacy := literacyMap[patient.MedicalLiteracy]
	conditions := conditionsText(patient)

	return fmt.Sprintf(`You are a medical AI assistant. Explain this report using ONLY the provided medical knowledge.

MEDICAL KNOWLEDGE BASE:
%s

REPORT FINDINGS:
%s

PATIENT CONTEXT:
- Age: %d
- Medical literacy: %s
- Existing conditions: %s

INSTRUCTIONS:
1. Explain findings using ONLY information from the knowledge base
2. Use %s
3. If uncertain, explicitly state "%s"
4. Personalize for age %d and conditions: %s
5. Be concise but complete

Provide explanation:`,
		strings.Join(contextLines, "\n"),
		strings.Join(findingLines, "\n"),
		patient.Age,
		literacy,
		conditions,
		literacy,
		UnclearNote,
		patient.Age,
		conditions,
	)
}

func buildQuestionPrompt(question string, results []*model.RetrievalResult, patient *model.PatientContext) string {
	contextLines := make([]string, 0, len(results))
	for _, r := range results {
		contextLines = append(contextLines, "- "+r.Content)
	}

	return fmt.Sprintf(`You are a medical AI assistant. Answer the question using ONLY the provided medical knowledge.

MEDICAL KNOWLEDGE BASE:
%s

QUESTION:
%s

PATIENT CONTEXT:
- Age: %d
- Medical literacy: %s
- Existing conditions: %s

INSTRUCTIONS:
1. Answer using ONLY the knowledge base
2. If uncertain, explicitly state "%s"
3. Be concise and clear

Provide answer:`,
		strings.Join(contextLines, "\n"),
		question,
		patient.Age,
		patient.MedicalLiteracy,
		conditionsText(patient),
		UnclearNote,
	)
}

func conditionsText(patient *model.PatientContext) string {
	if len(patient.ExistingConditions) == 0 {
		return "None"
	}
	return strings.Join(patient.ExistingConditions, ", ")
}

// ExtractUncertainties returns the sentences of text that contain an
// uncertainty marker. Sentences are split on periods and trimmed.
func ExtractUncertainties(text string) []string {
	var uncertainties []string
	for _, sentence := range strings.Split(text, ".") {
		lower := strings.ToLower(sentence)
		for _, marker := range uncertaintyMarkers {
			if strings.Contains(lower, marker) {
				uncertainties = append(uncertainties, strings.TrimSpace(sentence))
				break
			}
		}
	}
	return uncertainties
}

// confidenceScore derives confidence from the mean retrieval distance,
// penalized per uncertainty. Empty retrieval counts as distance 0 so the
// uncertainty penalty still applies.
func confidenceScore(results []*model.RetrievalResult, uncertaintyCount int, penalty float64) float64 {
	avgDistance := 0.0
	if len(results) > 0 {
		sum := 0.0
		for _, r := range results {
			sum += r.Distance
		}
		avgDistance = sum / float64(len(results))
	}

	confidence := (1 - avgDistance) * (1 - float64(uncertaintyCount)*penalty)
	return clamp01(confidence)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Summary renders the one-line triage summary over the findings.
func Summary(findings []*model.Finding) string {
	critical := 0
	attention := 0
	for _, f := range findings {
		switch f.Severity {
		case model.SeverityCritical:
			critical++
		case model.SeverityAttention:
			attention++
		}
	}

	if critical > 0 {
		return fmt.Sprintf("CRITICAL: %d findings require immediate attention", critical)
	}
	if attention > 0 {
		return fmt.Sprintf("%d findings need attention, rest normal", attention)
	}
	return "All findings within normal ranges"
}
