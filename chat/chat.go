// Package chat implements the guardrailed medical chatbot. It keeps a
// rolling conversation, tracks patient context and symptoms mentioned in
// free text and short-circuits emergencies before any model call.
package chat

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/saisubham-29/medrag/core/generate"
	"github.com/saisubham-29/medrag/helper"
)

const (
	historyLimit    = 12
	chatTemperature = 0.7

	// EmergencyAlert is returned verbatim for red-flag messages.
	EmergencyAlert = "EMERGENCY ALERT\n\nThis sounds like a medical emergency. Please:\n\n" +
		"1. Call emergency services immediately (911 in US, 112 in EU, or your local emergency number)\n" +
		"2. Go to the nearest emergency room, or\n" +
		"3. Call your doctor immediately\n\n" +
		"Do not wait. Seek help now."
)

const systemPrompt = `You are an empathetic medical AI assistant. Follow these rules:

1. PATIENT CONTEXT:
   - Remember patient details: age, existing conditions, medications, allergies
   - Personalize responses based on context
   - Ask for relevant details if missing

2. SYMPTOM ASSESSMENT:
   - Ask follow-up questions to understand symptoms better (duration, severity, triggers, associated symptoms)
   - Use structured approach: WHEN did it start? WHERE is it? HOW severe (1-10)? WHAT makes it better/worse?
   - Gather enough information before suggesting next steps

3. RESPONSE STRUCTURE:
   - Start with empathy
   - Ask clarifying questions if needed
   - Provide clear, detailed explanation
   - Suggest home care options (rest, hydration, OTC remedies)
   - Recommend when to see a doctor
   - Flag serious symptoms immediately

4. APPOINTMENT BOOKING:
   - Only help with booking when user explicitly requests it
   - Do NOT automatically suggest booking

5. SAFETY & GUARDRAILS:
   - RED FLAGS (seek immediate care): chest pain, difficulty breathing, severe bleeding, sudden severe headache, confusion, loss of consciousness, severe abdominal pain, signs of stroke
   - YELLOW FLAGS (see doctor soon): persistent fever, worsening symptoms, symptoms lasting more than a week
   - Never diagnose or prescribe prescription medication
   - Can suggest OTC remedies with a pharmacist caution

6. HOME CARE SUGGESTIONS:
   - Rest, hydration, nutrition
   - OTC medications with cautions
   - Warning signs to watch for

7. MULTILINGUAL:
   - Detect and respond in the user's language
   - Maintain medical accuracy

Be warm, thorough, and safety-focused.`

type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Reply is the chatbot's structured answer to one user message.
type Reply struct {
	Response       string            `json:"response"`
	IsEmergency    bool              `json:"is_emergency"`
	Severity       Severity          `json:"severity"`
	PatientContext map[string]string `json:"patient_context,omitempty"`
	Symptoms       []string          `json:"symptoms,omitempty"`
	ShowBooking    bool              `json:"show_booking"`
}

var emergencyKeywords = []string{
	"chest pain", "can't breathe", "can not breathe", "cannot breathe",
	"severe bleeding", "unconscious", "suicide", "overdose",
	"heart attack", "stroke", "severe headache", "confused",
	"loss of consciousness", "severe abdominal pain",
}

var agePattern = regexp.MustCompile(`\b(\d{1,3})\s*(?:years?|yrs?|yo)\b`)

var knownConditions = []string{
	"diabetes", "hypertension", "asthma", "heart disease", "kidney disease",
	"liver disease", "cancer", "copd", "arthritis", "depression", "anxiety",
}

var knownMedications = []string{
	"aspirin", "metformin", "insulin", "lisinopril", "atorvastatin",
	"amlodipine", "omeprazole", "levothyroxine", "albuterol",
}

var symptomKeywords = []string{
	"pain", "ache", "fever", "cough", "nausea", "vomit", "dizzy",
	"headache", "fatigue", "weakness", "bleeding", "rash", "swelling",
	"breathing", "chest", "stomach", "throat", "sore", "hurt",
}

// Bot is a stateful chatbot session. Safe for concurrent use, though a
// session normally belongs to a single user.
type Bot struct {
	mu          sync.Mutex
	complete    generate.CompleteFunc
	history     []generate.Message
	age         string
	conditions  []string
	medications []string
	symptoms    []string
}

// NewBot creates a chatbot session over the given completion capability.
func NewBot(complete generate.CompleteFunc) (*Bot, error) {
	if complete == nil {
		return nil, helper.NewError("chatbot validation", fmt.Errorf("completion function is nil"))
	}
	return &Bot{complete: complete}, nil
}

// Chat processes one user message. Emergencies are answered with the
// fixed alert and never reach the model.
func (b *Bot) Chat(ctx context.Context, userMessage string) (*Reply, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.extractPatientContext(userMessage)
	b.extractSymptoms(userMessage)

	lower := strings.ToLower(userMessage)
	for _, keyword := range emergencyKeywords {
		if strings.Contains(lower, keyword) {
			return &Reply{
				Response:    EmergencyAlert,
				IsEmergency: true,
				Severity:    SeverityCritical,
				ShowBooking: false,
			}, nil
		}
	}

	enhanced := userMessage
	if contextInfo := b.contextString(); contextInfo != "" {
		enhanced = contextInfo + "\n\nUser message: " + userMessage
	}

	b.history = append(b.history, generate.Message{Role: "user", Content: enhanced})
	if len(b.history) > historyLimit {
		b.history = b.history[len(b.history)-historyLimit:]
	}

	response, err := b.complete(ctx, systemPrompt, b.history, chatTemperature)
	if err != nil {
		return nil, &generate.GenerationError{Task: "chat", Err: err}
	}

	b.history = append(b.history, generate.Message{Role: "assistant", Content: response})

	return &Reply{
		Response:       response,
		IsEmergency:    false,
		Severity:       assessSeverity(response),
		PatientContext: b.patientContext(),
		Symptoms:       append([]string{}, b.symptoms...),
		ShowBooking:    false,
	}, nil
}

// Reset clears the conversation and the tracked context.
func (b *Bot) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.history = nil
	b.age = ""
	b.conditions = nil
	b.medications = nil
	b.symptoms = nil
}

// Symptoms returns the symptoms mentioned so far, for booking suggestions.
func (b *Bot) Symptoms() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string{}, b.symptoms...)
}

// Conditions returns the conditions mentioned so far.
func (b *Bot) Conditions() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string{}, b.conditions...)
}

func (b *Bot) extractPatientContext(message string) {
	lower := strings.ToLower(message)

	if match := agePattern.FindStringSubmatch(lower); match != nil {
		b.age = match[1]
	}

	for _, condition := range knownConditions {
		if strings.Contains(lower, condition) && !contains(b.conditions, condition) {
			b.conditions = append(b.conditions, condition)
		}
	}

	if strings.Contains(lower, "taking") || strings.Contains(lower, "medication") || strings.Contains(lower, "medicine") {
		for _, med := range knownMedications {
			if strings.Contains(lower, med) && !contains(b.medications, med) {
				b.medications = append(b.medications, med)
			}
		}
	}
}

func (b *Bot) extractSymptoms(message string) {
	lower := strings.ToLower(message)
	for _, symptom := range symptomKeywords {
		if strings.Contains(lower, symptom) && !contains(b.symptoms, symptom) {
			b.symptoms = append(b.symptoms, symptom)
		}
	}
}

func (b *Bot) contextString() string {
	parts := []string{}
	if b.age != "" {
		parts = append(parts, "Age: "+b.age)
	}
	if len(b.conditions) > 0 {
		parts = append(parts, "Conditions: "+strings.Join(b.conditions, ", "))
	}
	if len(b.medications) > 0 {
		parts = append(parts, "Medications: "+strings.Join(b.medications, ", "))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Patient context: | " + strings.Join(parts, " | ")
}

func (b *Bot) patientContext() map[string]string {
	context := map[string]string{}
	if b.age != "" {
		context["age"] = b.age
	}
	if len(b.conditions) > 0 {
		context["conditions"] = strings.Join(b.conditions, ", ")
	}
	if len(b.medications) > 0 {
		context["medications"] = strings.Join(b.medications, ", ")
	}
	return context
}

// assessSeverity grades the assistant reply by escalation language.
func assessSeverity(response string) Severity {
	lower := strings.ToLower(response)

	for _, word := range []string{"emergency", "immediately", "urgent", "call 911"} {
		if strings.Contains(lower, word) {
			return SeverityHigh
		}
	}
	for _, word := range []string{"see a doctor", "medical attention", "consult"} {
		if strings.Contains(lower, word) {
			return SeverityMedium
		}
	}
	return SeverityLow
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
