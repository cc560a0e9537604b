package composer

import (
	"companion/cmd/internal/directory"
	"companion/cmd/internal/integration/google/gemini"
	"companion/cmd/internal/metrics"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
)

type Category string

const (
	Motivational Category = "motivational"
	Medication   Category = "medicational"
	Advice       Category = "advice"
)

var ErrUnsupportedCategory = errors.New("composer: unsupported notification category")

func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case Motivational, Medication, Advice:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedCategory, s)
}

const (
	// FallbackMessage is returned whenever generation fails.
	FallbackMessage = "We couldn't prepare your personal message right now, but we are thinking of you. Take good care of yourself today."

	SignOff = "Best regards,\nElderly Companion"
)

// EnhancedSampling is the fixed parameter set of the enhanced accuracy tier.
var EnhancedSampling = gemini.Sampling{
	Temperature:     0.7,
	TopP:            0.95,
	TopK:            50,
	MaxOutputTokens: 100,
}

// Generator produces text for a prompt. A nil sampling means model defaults.
type Generator interface {
	Generate(ctx context.Context, prompt string, sampling *gemini.Sampling) (string, error)
}

type Request struct {
	Category  Category
	Name      string
	Age       int
	Condition string
	Enhanced  bool
}

type Composer struct {
	gen     Generator
	metrics *metrics.Metrics
}

// New returns a composer backed by gen. With a nil gen every message is
// the fallback text.
func New(gen Generator, m *metrics.Metrics) *Composer {
	return &Composer{gen: gen, metrics: m}
}

// Compose asks the generator for a message. It never fails: generation
// errors are logged and replaced by FallbackMessage. The result always
// ends in terminal punctuation.
func (c *Composer) Compose(ctx context.Context, req Request) string {
	tier := "standard"
	var sampling *gemini.Sampling
	if req.Enhanced {
		tier = "enhanced"
		params := EnhancedSampling
		sampling = &params
	}

	prompt, err := Prompt(req)
	if err != nil {
		log.Errorf("compose for %s: %v", req.Name, err)
		c.metrics.ObserveGeneration(string(req.Category), tier, "rejected")
		return FallbackMessage
	}
	if c.gen == nil {
		c.metrics.ObserveGeneration(string(req.Category), tier, "disabled")
		return FallbackMessage
	}

	text, err := c.gen.Generate(ctx, prompt, sampling)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("empty generation")
	}
	if err != nil {
		log.Errorf("text generation (%s, %s) for %s failed, using fallback: %v", req.Category, tier, req.Name, err)
		c.metrics.ObserveGeneration(string(req.Category), tier, "fallback")
		return FallbackMessage
	}

	c.metrics.ObserveGeneration(string(req.Category), tier, "ok")
	return EnsureTerminalPunctuation(text)
}

// Prompt builds the generation prompt for a category.
func Prompt(req Request) (string, error) {
	who := fmt.Sprintf("%s, who is %d years old and lives with %s", req.Name, req.Age, req.Condition)
	switch req.Category {
	case Motivational:
		return fmt.Sprintf("Write a short, warm motivational message for %s. Keep it to two or three sentences and speak to them directly.", who), nil
	case Medication:
		return fmt.Sprintf("Write a short, friendly reminder for %s to take their medication on time today. Be kind and encouraging, two or three sentences.", who), nil
	case Advice:
		return fmt.Sprintf("Give %s one practical piece of everyday health advice suited to their condition, in two or three plain sentences.", who), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedCategory, req.Category)
}

// EnsureTerminalPunctuation appends an ellipsis unless text already ends
// in '.', '!' or '?'.
func EnsureTerminalPunctuation(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	switch text[len(text)-1] {
	case '.', '!', '?':
		return text
	}
	return text + "..."
}

func WithSignOff(text string) string {
	return text + "\n\n" + SignOff
}

func Subject(c Category) string {
	switch c {
	case Motivational:
		return "A Little Motivation For You"
	case Medication:
		return "Medication Reminder"
	case Advice:
		return "Health Advice For You"
	}
	return "A Message From Elderly Companion"
}

// BookingConfirmation renders the email body sent after a booking.
func BookingConfirmation(patientName string, doctor directory.Doctor, scheduledAt time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Dear %s,\n\n", patientName)
	sb.WriteString("Your appointment has been confirmed:\n\n")
	fmt.Fprintf(&sb, "Doctor: %s (%s)\n", doctor.Name, doctor.Specialty)
	fmt.Fprintf(&sb, "Date and Time: %s\n\n", scheduledAt.Format("Monday, January 02, 2006 at 03:04 PM"))
	sb.WriteString("Please arrive 15 minutes before your scheduled appointment time.\n\n")
	sb.WriteString("If you need to reschedule or cancel, please contact us at least 24 hours in advance.\n\n")
	sb.WriteString("Thank you for choosing our service!\n\n")
	sb.WriteString(SignOff)
	return sb.String()
}
