package scheduler

import (
	"companion/cmd/internal/integration/mailer"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now    time.Time
	mu     sync.Mutex
	timers []fakeTimer
}

type fakeTimer struct {
	d time.Duration
	f func()
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) AfterFunc(d time.Duration, f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timers = append(c.timers, fakeTimer{d: d, f: f})
}

type recordingSender struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg mailer.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func TestNextOccurrence(t *testing.T) {
	now := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		tod  TimeOfDay
		want time.Time
	}{
		{"later today", TimeOfDay{15, 0}, time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)},
		{"one minute ahead", TimeOfDay{14, 31}, time.Date(2024, 3, 10, 14, 31, 0, 0, time.UTC)},
		{"earlier today rolls over", TimeOfDay{9, 0}, time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)},
		{"equal rolls over", TimeOfDay{14, 30}, time.Date(2024, 3, 11, 14, 30, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextOccurrence(now, tc.tod)
			assert.Equal(t, tc.want, got)
			assert.True(t, got.After(now))
			assert.LessOrEqual(t, got.Sub(now), 24*time.Hour)
		})
	}
}

func TestNextOccurrence_MidnightBoundary(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := NextOccurrence(now, TimeOfDay{0, 0})
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestNextOccurrence_SecondsPastMinute(t *testing.T) {
	now := time.Date(2024, 1, 1, 8, 0, 30, 0, time.UTC)
	got := NextOccurrence(now, TimeOfDay{8, 0})
	assert.Equal(t, time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), got)
}

func TestNextOccurrence_MonthEnd(t *testing.T) {
	now := time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)
	got := NextOccurrence(now, TimeOfDay{6, 15})
	assert.Equal(t, time.Date(2025, 1, 1, 6, 15, 0, 0, time.UTC), got)
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("07:05")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{7, 5}, tod)
	assert.Equal(t, "07:05", tod.String())

	for _, bad := range []string{"", "7pm", "24:00", "12:60", "12-30", "12:30:00"} {
		_, err := ParseTimeOfDay(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay, bad)
	}
}

func TestDispatch_ImmediateIsSynchronous(t *testing.T) {
	sender := &recordingSender{}
	clock := &fakeClock{now: time.Now()}
	s := New(sender, WithClock(clock))

	res, err := s.Dispatch(context.Background(), "", mailer.Message{To: "a@x.com", Subject: "hi"})
	require.NoError(t, err)
	assert.False(t, res.Deferred)
	require.Len(t, sender.sent, 1)
	assert.Empty(t, clock.timers)
}

func TestDispatch_ImmediateFailurePropagates(t *testing.T) {
	sender := &recordingSender{err: errors.New("relay down")}
	s := New(sender, WithClock(&fakeClock{now: time.Now()}))

	_, err := s.Dispatch(context.Background(), "", mailer.Message{To: "a@x.com"})
	assert.Error(t, err)
}

func TestDispatch_MalformedTimeNeverSends(t *testing.T) {
	sender := &recordingSender{}
	clock := &fakeClock{now: time.Now()}
	s := New(sender, WithClock(clock))

	_, err := s.Dispatch(context.Background(), "half past nine", mailer.Message{To: "a@x.com"})
	assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
	assert.Empty(t, sender.sent)
	assert.Empty(t, clock.timers)
	assert.Zero(t, s.Pending())
}

func TestDispatch_DeferredRegistersAndFires(t *testing.T) {
	sender := &recordingSender{}
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := New(sender, WithClock(clock))

	res, err := s.Dispatch(context.Background(), "00:00", mailer.Message{To: "a@x.com", Subject: "later"})
	require.NoError(t, err)
	assert.True(t, res.Deferred)
	assert.NotEmpty(t, res.JobID)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), res.FireAt)

	require.Len(t, clock.timers, 1)
	assert.Equal(t, 24*time.Hour, clock.timers[0].d)
	assert.Equal(t, 1, s.Pending())
	assert.Empty(t, sender.sent, "deferred jobs must not send before firing")

	clock.timers[0].f()

	assert.Zero(t, s.Pending())
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "later", sender.sent[0].Subject)
}

func TestDispatch_DeferredFailureIsLoggedOnly(t *testing.T) {
	sender := &recordingSender{err: errors.New("relay down")}
	clock := &fakeClock{now: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)}
	s := New(sender, WithClock(clock))

	_, err := s.Dispatch(context.Background(), "09:00", mailer.Message{To: "a@x.com"})
	require.NoError(t, err)
	require.Len(t, clock.timers, 1)

	assert.NotPanics(t, clock.timers[0].f)
	assert.Zero(t, s.Pending())
}

func TestDispatch_SystemClockFiresOnOwnGoroutine(t *testing.T) {
	done := make(chan mailer.Message, 1)
	sender := senderFunc(func(_ context.Context, msg mailer.Message) error {
		done <- msg
		return nil
	})
	s := New(sender, WithClock(shortClock{}))
	now := time.Now()

	_, err := s.Dispatch(context.Background(), TimeOfDay{now.Hour(), now.Minute()}.String(), mailer.Message{To: "a@x.com"})
	require.NoError(t, err)

	select {
	case msg := <-done:
		assert.Equal(t, "a@x.com", msg.To)
	case <-time.After(2 * time.Second):
		t.Fatal("deferred job did not fire")
	}
}

type senderFunc func(ctx context.Context, msg mailer.Message) error

func (f senderFunc) Send(ctx context.Context, msg mailer.Message) error { return f(ctx, msg) }

// shortClock runs timers on real goroutines but without the real wait.
type shortClock struct{}

func (shortClock) Now() time.Time { return time.Now() }

func (shortClock) AfterFunc(_ time.Duration, f func()) {
	systemClock{}.AfterFunc(10*time.Millisecond, f)
}
