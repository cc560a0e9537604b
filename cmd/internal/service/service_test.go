package service

import (
	"companion/cmd/internal/composer"
	"companion/cmd/internal/directory"
	"companion/cmd/internal/domain/sqlite"
	"companion/cmd/internal/domain/sqlite/repository"
	"companion/cmd/internal/integration/mailer"
	"companion/cmd/internal/utils/validators"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeComposer struct {
	calls []composer.Request
	text  string
}

func (f *fakeComposer) Compose(_ context.Context, req composer.Request) string {
	f.calls = append(f.calls, req)
	return f.text
}

type manualClock struct {
	now    time.Time
	timers []func()
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) AfterFunc(_ time.Duration, f func()) {
	c.timers = append(c.timers, f)
}

var errRelayDown = errors.New("relay down")

func newValidator() *validator.Validate {
	v := validator.New()
	validators.Register(v)
	return v
}

func newAppointmentFixture(t *testing.T, sender mailer.Sender) (*DefaultAppointmentService, *repository.DefaultAppointmentRepository) {
	t.Helper()
	db, err := sqlite.Init(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	repo := repository.NewAppointmentRepository(db)
	return NewAppointmentService(repo, directory.Default(), sender, newValidator(), nil), repo
}
