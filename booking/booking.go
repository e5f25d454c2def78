// Package booking handles appointment booking suggestions: intent
// detection, specialty matching and slot generation. Slots are synthetic
// until a real scheduling backend is integrated.
package booking

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultSpecialty = "General Physician"

	bookingBaseURL = "https://chroniccare.com/book"
	bookingPhone   = "1-800-CHRONIC (1-800-247-6642)"
)

// Slot is a single bookable appointment slot.
type Slot struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Specialty string `json:"specialty"`
	Available bool   `json:"available"`
}

var Specialties = []string{
	"General Physician",
	"Cardiologist",
	"Endocrinologist",
	"Neurologist",
	"Dermatologist",
	"Orthopedic",
	"Gastroenterologist",
	"Pulmonologist",
}

var bookingKeywords = []string{
	"book appointment", "schedule appointment", "see a doctor",
	"need appointment", "want to consult", "visit doctor",
	"book doctor", "appointment", "consultation",
}

// conditionMap pairs condition/symptom keywords with the specialty that
// treats them. Checked in a fixed order so suggestions are deterministic.
var conditionMap = []struct {
	keyword   string
	specialty string
}{
	{"diabetes", "Endocrinologist"},
	{"hypertension", "Cardiologist"},
	{"heart", "Cardiologist"},
	{"asthma", "Pulmonologist"},
	{"breathing", "Pulmonologist"},
	{"skin", "Dermatologist"},
	{"joint", "Orthopedic"},
	{"stomach", "Gastroenterologist"},
	{"headache", "Neurologist"},
}

// DetectIntent reports whether the message asks for an appointment.
func DetectIntent(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range bookingKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// SuggestSpecialty picks a specialty from known conditions first, then
// from symptom text. Falls back to a general physician.
func SuggestSpecialty(symptoms []string, conditions []string) string {
	for _, condition := range conditions {
		lower := strings.ToLower(condition)
		for _, entry := range conditionMap {
			if lower == entry.keyword {
				return entry.specialty
			}
		}
	}

	for _, symptom := range symptoms {
		lower := strings.ToLower(symptom)
		for _, entry := range conditionMap {
			if strings.Contains(lower, entry.keyword) {
				return entry.specialty
			}
		}
	}

	return DefaultSpecialty
}

// AvailableSlots generates weekday slots starting tomorrow, hours
// 9-11 and 14-17, capped at the first 10.
func AvailableSlots(specialty string, daysAhead int, now time.Time) []Slot {
	slots := []Slot{}
	start := now.AddDate(0, 0, 1)

	for day := 0; day < daysAhead; day++ {
		date := start.AddDate(0, 0, day)
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			continue
		}
		for _, hour := range []int{9, 10, 11, 14, 15, 16, 17} {
			slots = append(slots, Slot{
				Date:      date.Format("2006-01-02"),
				Time:      fmt.Sprintf("%02d:00", hour),
				Specialty: specialty,
				Available: true,
			})
		}
	}

	if len(slots) > 10 {
		slots = slots[:10]
	}
	return slots
}

// FormatResponse renders the booking options for the user, listing at
// most the first five slots.
func FormatResponse(specialty string, slots []Slot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Appointment Booking - %v\n\n", specialty)
	b.WriteString("Available slots:\n\n")

	shown := slots
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for i, slot := range shown {
		dayName := ""
		if date, err := time.Parse("2006-01-02", slot.Date); err == nil {
			dayName = date.Weekday().String() + ", "
		}
		fmt.Fprintf(&b, "%d. %v%v at %v\n", i+1, dayName, slot.Date, slot.Time)
	}

	b.WriteString("\nTo confirm your appointment:\n")
	fmt.Fprintf(&b, "1. Call Chronic Care: %v\n", bookingPhone)
	fmt.Fprintf(&b, "2. Visit: %v\n", bookingBaseURL)
	b.WriteString("3. Reply with the slot number you prefer\n\n")
	b.WriteString("Please have your insurance information ready.")

	return b.String()
}

// Link generates a prefilled booking link for a chosen slot.
func Link(specialty string, date string, slotTime string) string {
	query := url.Values{}
	query.Set("specialty", specialty)
	query.Set("date", date)
	query.Set("time", slotTime)
	return bookingBaseURL + "?" + query.Encode()
}
