package model

type FindingCategory string

const (
	CategoryLabTest     FindingCategory = "lab_test"
	CategoryObservation FindingCategory = "observation"
)

type Severity string

const (
	SeverityNormal    Severity = "normal"
	SeverityAttention Severity = "attention"
	SeverityCritical  Severity = "critical"
)

// Finding represents a structured fact extracted from report text.
// Confidence reflects the extraction method (0.85 for labeled lab values,
// 0.75 for narrative observations), not diagnostic certainty.
type Finding struct {
	Category    FindingCategory `json:"category"`
	Finding     string          `json:"finding"`
	Value       string          `json:"value,omitempty"`
	NormalRange string          `json:"normal_range,omitempty"`
	Severity    Severity        `json:"severity"`
	Confidence  float64         `json:"confidence"`
}

// HasCritical reports whether any finding in the list is critical.
func HasCritical(findings []*Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
