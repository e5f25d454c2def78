package model

import (
	"errors"
	"fmt"
)

type Literacy string

const (
	LiteracyLow    Literacy = "low"
	LiteracyMedium Literacy = "medium"
	LiteracyHigh   Literacy = "high"
)

// PatientContext carries the personalization context supplied by the caller.
// The core never mutates it.
type PatientContext struct {
	Age                int      `json:"age"`
	MedicalLiteracy    Literacy `json:"medical_literacy"`
	ExistingConditions []string `json:"existing_conditions"`
	LanguagePreference string   `json:"language_preference"`
}

// Validate checks the patient context and fails fast on invalid values
// instead of silently defaulting.
func (p *PatientContext) Validate() error {
	if p == nil {
		return errors.New("patient context is nil")
	}
	if p.Age <= 0 {
		return fmt.Errorf("patient age must be positive, got %d", p.Age)
	}
	switch p.MedicalLiteracy {
	case LiteracyLow, LiteracyMedium, LiteracyHigh:
	default:
		return fmt.Errorf("unknown medical literacy %q (use low, medium or high)", p.MedicalLiteracy)
	}
	return nil
}
