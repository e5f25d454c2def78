package model

// ExplanationOutput is the terminal artifact of report processing.
// DoctorNotes is filled in later by the review workflow, never by the core.
type ExplanationOutput struct {
	Summary                 string     `json:"summary"`
	Findings                []*Finding `json:"findings"`
	PersonalizedExplanation string     `json:"personalized_explanation"`
	UncertaintyNotes        []string   `json:"uncertainty_notes"`
	ConfidenceScore         float64    `json:"confidence_score"`
	SourcesUsed             []string   `json:"sources_used"`
	RequiresDoctorReview    bool       `json:"requires_doctor_review"`
	DoctorNotes             string     `json:"doctor_notes,omitempty"`
}

// Answer is the result of the question-answering path.
// Unlike report processing it carries no review flag.
type Answer struct {
	Text          string   `json:"text"`
	Confidence    float64  `json:"confidence"`
	SourcesUsed   []string `json:"sources_used"`
	Uncertainties []string `json:"uncertainties"`
}
