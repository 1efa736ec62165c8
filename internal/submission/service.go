// Package submission receives name/email pairs, validates them and exposes
// everything received so far.
package submission

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"email-intake/internal/metrics"
	"email-intake/internal/storage"
	"email-intake/internal/validator"
)

// Snapshot is the externally visible state of the submission log.
type Snapshot struct {
	StoredData   []storage.Submission `json:"storedData"`
	DataMessages []string             `json:"dataMessages"`
}

type Service struct {
	store  storage.Provider
	logger *slog.Logger

	mu             sync.RWMutex
	statusMessages []string

	now func() time.Time
}

func NewService(store storage.Provider) *Service {
	return &Service{
		store:          store,
		logger:         slog.With("component", "submission"),
		statusMessages: []string{},
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates email and appends the record, valid or not. The only
// error is a failing store; a malformed address is a normal outcome.
func (s *Service) Submit(ctx context.Context, name, email string) (storage.Submission, error) {
	s.logger.Info("Received form submission", "name", name, "email", email)

	record := storage.Submission{
		Name:       name,
		Email:      email,
		Outcome:    validator.Validate(email),
		ReceivedAt: s.now(),
	}

	// A client hanging up after posting must not lose the record, so only
	// the values of ctx are passed on.
	if err := s.store.AppendSubmission(context.WithoutCancel(ctx), record); err != nil {
		return storage.Submission{}, fmt.Errorf("failed to store submission: %w", err)
	}
	metrics.ObserveOutcome(record.Outcome)

	if record.Outcome.Valid() {
		s.logger.Debug("Submission stored", "email", email, "valid", true)
	} else {
		s.logger.Debug("Submission stored", "email", email, "valid", false, "violations", len(record.Outcome.Violations))
	}
	return record, nil
}

// Snapshot returns every record received since start plus the status messages.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	records, err := s.store.ListSubmissions(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list submissions: %w", err)
	}
	if records == nil {
		records = []storage.Submission{}
	}

	return Snapshot{
		StoredData:   records,
		DataMessages: s.StatusMessages(),
	}, nil
}

// AddStatusMessage appends an informational message to the snapshot.
func (s *Service) AddStatusMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusMessages = append(s.statusMessages, msg)
}

func (s *Service) StatusMessages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.statusMessages))
	copy(out, s.statusMessages)
	return out
}
