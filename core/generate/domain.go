package generate

import (
	"regexp"
	"strings"
)

// OutOfScopeDeflection is returned verbatim for questions outside the
// medical domain.
const OutOfScopeDeflection = "I can answer questions about medical reports, lab values, and findings. " +
	"Please ask a medical question (e.g., about a lab value, range, or symptom)."

// OutOfScopeNote is the single uncertainty attached to deflected questions.
const OutOfScopeNote = "Outside medical scope"

var (
	unitPattern  = regexp.MustCompile(`\b(mg/dl|mmhg|miu/l|ng/ml|g/dl|cells/mcl)\b`)
	tokenPattern = regexp.MustCompile(`[a-z0-9]+`)
)

var medicalKeywords = map[string]struct{}{
	"hemoglobin": {}, "glucose": {}, "cholesterol": {}, "creatinine": {}, "wbc": {},
	"white": {}, "blood": {}, "pressure": {}, "tsh": {}, "alt": {}, "hba1c": {},
	"vitamin": {}, "lab": {}, "range": {}, "anemia": {}, "diabetes": {},
	"infection": {}, "kidney": {}, "liver": {}, "thyroid": {}, "test": {},
	"result": {}, "report": {}, "panel": {}, "count": {}, "symptom": {},
	"diagnosis": {}, "pain": {}, "ache": {}, "stomach": {}, "nausea": {},
	"vomit": {}, "fever": {}, "cough": {}, "headache": {}, "dizzy": {},
	"fatigue": {}, "sick": {}, "hurt": {}, "sore": {}, "swelling": {},
	"rash": {}, "breathing": {}, "chest": {}, "heart": {}, "medical": {},
	"health": {}, "doctor": {}, "treatment": {}, "medication": {},
	"disease": {}, "condition": {},
}

// IsMedicalQuestion is a lightweight heuristic to detect medical-domain
// questions. Measurement units pass immediately, otherwise the question
// must share at least one token with the medical vocabulary.
func IsMedicalQuestion(question string) bool {
	q := strings.ToLower(question)
	if unitPattern.MatchString(q) {
		return true
	}

	for _, token := range tokenPattern.FindAllString(q, -1) {
		if _, ok := medicalKeywords[token]; ok {
			return true
		}
	}
	return false
}
