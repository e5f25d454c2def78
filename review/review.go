// Package review implements the human-in-the-loop verification queue.
// Explanations flagged for doctor review are parked here until a doctor
// approves or rejects them.
package review

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/saisubham-29/medrag/helper"
	"github.com/saisubham-29/medrag/model"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Review is a single queued explanation awaiting doctor verification.
type Review struct {
	ReportID uuid.UUID                `json:"report_id"`
	Output   *model.ExplanationOutput `json:"output"`
	Status   Status                   `json:"status"`
}

// Queue is an in-memory doctor review queue. Safe for concurrent use.
type Queue struct {
	mu      sync.Mutex
	reviews []*Review
	out     io.Writer
}

// NewQueue creates an empty queue writing notifications to stdout.
func NewQueue() *Queue {
	return &Queue{out: os.Stdout}
}

// NewQueueWithWriter creates a queue writing notifications to out.
func NewQueueWithWriter(out io.Writer) *Queue {
	return &Queue{out: out}
}

// Submit queues an output for doctor review and prints the notification.
// It returns the generated report id.
func (q *Queue) Submit(output *model.ExplanationOutput) (uuid.UUID, error) {
	if output == nil {
		return uuid.Nil, helper.NewError("submit review", fmt.Errorf("output is nil"))
	}

	reportID := uuid.New()

	q.mu.Lock()
	q.reviews = append(q.reviews, &Review{
		ReportID: reportID,
		Output:   output,
		Status:   StatusPending,
	})
	q.mu.Unlock()

	q.notify(reportID, output)

	return reportID, nil
}

// Verify records the doctor's decision for a queued report. Notes are
// written onto the output so they travel with the explanation. Returns
// the verified output or an error if the report id is unknown.
func (q *Queue) Verify(reportID uuid.UUID, approved bool, notes string) (*model.ExplanationOutput, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, review := range q.reviews {
		if review.ReportID != reportID {
			continue
		}

		if approved {
			review.Status = StatusApproved
		} else {
			review.Status = StatusRejected
		}
		review.Output.DoctorNotes = notes

		verdict := color.New(color.FgGreen).Sprint("APPROVED")
		if !approved {
			verdict = color.New(color.FgRed).Sprint("REJECTED")
		}
		fmt.Fprintf(q.out, "Report %v %v by doctor\n", reportID, verdict)
		if notes != "" {
			fmt.Fprintf(q.out, "Doctor notes: %v\n", notes)
		}

		return review.Output, nil
	}

	return nil, helper.NewError("verify review", fmt.Errorf("no review found for report %v", reportID))
}

// Pending returns all reviews still waiting for a doctor.
func (q *Queue) Pending() []*Review {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending := []*Review{}
	for _, review := range q.reviews {
		if review.Status == StatusPending {
			pending = append(pending, review)
		}
	}
	return pending
}

func (q *Queue) notify(reportID uuid.UUID, output *model.ExplanationOutput) {
	divider := strings.Repeat("=", 60)
	header := color.New(color.FgYellow, color.Bold)

	reason := "Low confidence"
	if model.HasCritical(output.Findings) {
		reason = "Critical findings"
	}

	fmt.Fprintf(q.out, "\n%v\n", divider)
	header.Fprintf(q.out, "DOCTOR REVIEW REQUIRED - Report ID: %v\n", reportID)
	fmt.Fprintf(q.out, "%v\n", divider)
	fmt.Fprintf(q.out, "Reason: %v\n", reason)
	fmt.Fprintf(q.out, "Confidence Score: %.2f\n", output.ConfidenceScore)
	fmt.Fprintf(q.out, "\nAI Summary: %v\n", output.Summary)
	fmt.Fprintf(q.out, "\nFindings:\n")
	for _, f := range output.Findings {
		value := f.Value
		if value == "" {
			value = "N/A"
		}
		fmt.Fprintf(q.out, "  - [%v] %v: %v\n", strings.ToUpper(string(f.Severity)), f.Finding, value)
	}
	fmt.Fprintf(q.out, "\nAI Explanation:\n%v\n", output.PersonalizedExplanation)
	fmt.Fprintf(q.out, "\nUncertainties:\n")
	for _, u := range output.UncertaintyNotes {
		fmt.Fprintf(q.out, "  - %v\n", u)
	}
	fmt.Fprintf(q.out, "%v\n\n", divider)
}
