package scheduler

import (
	"companion/cmd/internal/integration/mailer"
	"companion/cmd/internal/metrics"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

var ErrInvalidTimeOfDay = errors.New("scheduler: time of day must be formatted as HH:MM")

// TimeOfDay is a wall-clock time with no date and no zone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// NextOccurrence returns the first instant strictly after now at which
// the wall clock in now's location reads tod. A time equal to now counts
// as already passed, so the result is always in (now, now+24h].
func NextOccurrence(now time.Time, tod TimeOfDay) time.Time {
	y, m, d := now.Date()
	candidate := time.Date(y, m, d, tod.Hour, tod.Minute, 0, 0, now.Location())
	if !candidate.After(now) {
		candidate = time.Date(y, m, d+1, tod.Hour, tod.Minute, 0, 0, now.Location())
	}
	return candidate
}

// Job is a deferred delivery. It lives only in memory.
type Job struct {
	ID      string
	FireAt  time.Time
	Message mailer.Message
}

type Result struct {
	JobID    string
	FireAt   time.Time
	Deferred bool
}

type Scheduler struct {
	sender  mailer.Sender
	clock   Clock
	metrics *metrics.Metrics

	mu      sync.Mutex
	pending map[string]Job
}

type Option func(*Scheduler)

func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scheduler) { s.metrics = m }
}

func New(sender mailer.Sender, opts ...Option) *Scheduler {
	s := &Scheduler{
		sender:  sender,
		clock:   systemClock{},
		pending: make(map[string]Job),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch delivers msg now when timeOfDay is empty, waiting for the
// transport. Otherwise it registers a one-shot job at the next occurrence
// of timeOfDay and returns without waiting. A malformed timeOfDay is an
// error; it never degrades to immediate delivery.
func (s *Scheduler) Dispatch(ctx context.Context, timeOfDay string, msg mailer.Message) (*Result, error) {
	if timeOfDay == "" {
		err := s.sender.Send(ctx, msg)
		s.metrics.ObserveDelivery("immediate", err)
		if err != nil {
			return nil, fmt.Errorf("scheduler: immediate delivery: %w", err)
		}
		return &Result{}, nil
	}

	tod, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	job := Job{
		ID:      uuid.NewString(),
		FireAt:  NextOccurrence(now, tod),
		Message: msg,
	}

	s.mu.Lock()
	s.pending[job.ID] = job
	s.mu.Unlock()
	s.metrics.JobScheduled()

	s.clock.AfterFunc(job.FireAt.Sub(now), func() { s.fire(job) })

	log.Infof("deferred job %s for %s scheduled at %s", job.ID, msg.To, job.FireAt.Format(time.RFC3339))
	return &Result{JobID: job.ID, FireAt: job.FireAt, Deferred: true}, nil
}

// Pending returns how many jobs are registered but have not fired yet.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Scheduler) fire(job Job) {
	s.mu.Lock()
	delete(s.pending, job.ID)
	s.mu.Unlock()
	s.metrics.JobFired()

	err := s.sender.Send(context.Background(), job.Message)
	s.metrics.ObserveDelivery("deferred", err)
	if err != nil {
		log.Errorf("deferred job %s to %s failed: %v", job.ID, job.Message.To, err)
		return
	}
	log.Infof("deferred job %s delivered to %s", job.ID, job.Message.To)
}
