package medrag

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/saisubham-29/medrag/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleCorpus = []string{
	"Normal hemoglobin levels range from 13.5 to 17.5 g/dL for men and 12.0 to 15.5 g/dL for women. Low hemoglobin levels may indicate anemia.",
	"Blood glucose fasting levels should be 70 to 100 mg/dL. Levels above 126 mg/dL may indicate diabetes.",
	"Normal white blood cell count is 4,500 to 11,000 cells per microliter. Elevated WBC can indicate infection.",
	"Cholesterol total should be below 200 mg/dL. LDL below 100 mg/dL is optimal.",
}

func testSystem(t *testing.T) *System {
	system, err := NewSystem(&Config{Offline: true})
	require.NoError(t, err)

	err = system.InitializeKnowledgeBase(context.Background(), sampleCorpus)
	require.NoError(t, err)

	return system
}

func testPatient() *model.PatientContext {
	return &model.PatientContext{
		Age:                45,
		MedicalLiteracy:    model.LiteracyLow,
		ExistingConditions: []string{"diabetes"},
	}
}

func TestProcessReportEndToEnd(t *testing.T) {
	system := testSystem(t)
	defer system.Close()

	t.Run("Attention report queued for review in offline mode", func(t *testing.T) {
		report := "Hemoglobin: 10.2 (13.5-17.5)\nLow hemoglobin observed."

		output, reportID, err := system.ProcessReport(context.Background(), report, testPatient())
		require.NoError(t, err)

		require.NotEmpty(t, output.Findings)
		assert.Contains(t, output.Summary, "need attention")
		assert.Contains(t, output.PersonalizedExplanation, "Offline mode:")
		assert.NotEmpty(t, output.SourcesUsed)
		assert.True(t, output.RequiresDoctorReview, "Expected offline confidence damping to require review")
		assert.NotEqual(t, uuid.Nil, reportID, "Expected flagged report to be queued")
		assert.NotEmpty(t, system.Reviews.Pending())
	})

	t.Run("Doctor verification round trip", func(t *testing.T) {
		report := "WBC count critical. Blood test shows severe infection."

		output, reportID, err := system.ProcessReport(context.Background(), report, testPatient())
		require.NoError(t, err)
		require.True(t, output.RequiresDoctorReview)

		verified, err := system.Reviews.Verify(reportID, true, "Start antibiotics, recheck in a week")
		require.NoError(t, err)
		assert.Equal(t, "Start antibiotics, recheck in a week", verified.DoctorNotes)
	})

	t.Run("Deterministic across runs", func(t *testing.T) {
		report := "Glucose: 135 (70-100)"

		first, _, err := system.ProcessReport(context.Background(), report, testPatient())
		require.NoError(t, err)
		second, _, err := system.ProcessReport(context.Background(), report, testPatient())
		require.NoError(t, err)

		assert.Equal(t, first.PersonalizedExplanation, second.PersonalizedExplanation)
		assert.Equal(t, first.ConfidenceScore, second.ConfidenceScore)
		assert.Equal(t, first.SourcesUsed, second.SourcesUsed)
	})
}

func TestAnswerQuestionEndToEnd(t *testing.T) {
	system := testSystem(t)
	defer system.Close()

	t.Run("Medical question grounded in corpus", func(t *testing.T) {
		answer, err := system.AnswerQuestion(context.Background(), "what is the normal hemoglobin range", testPatient())
		require.NoError(t, err)

		assert.Contains(t, answer.Text, "hemoglobin")
		assert.NotEmpty(t, answer.SourcesUsed)
		assert.Greater(t, answer.Confidence, 0.0)
	})

	t.Run("Out-of-scope question deflected", func(t *testing.T) {
		answer, err := system.AnswerQuestion(context.Background(), "what is the capital of France", testPatient())
		require.NoError(t, err)

		assert.Zero(t, answer.Confidence)
		assert.Empty(t, answer.SourcesUsed)
		assert.Equal(t, []string{"Outside medical scope"}, answer.Uncertainties)
	})
}

func TestNewSystemValidation(t *testing.T) {
	t.Run("No completion function and not offline", func(t *testing.T) {
		_, err := NewSystem(&Config{})
		assert.Error(t, err)
	})
}
