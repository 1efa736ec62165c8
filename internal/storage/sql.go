package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"email-intake/internal/validator"
)

type SQLProvider struct {
	db     *sqlx.DB
	driver string

	logger *slog.Logger
}

func NewSQLProvider(driverName string, dataSource string) (*SQLProvider, error) {
	db, err := sqlx.Open(driverName, dataSource)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driverName, err)
	}

	logger := slog.With("component", "storage", "driver", driverName)

	return &SQLProvider{
		db:     db,
		driver: driverName,
		logger: logger,
	}, nil
}

func (p *SQLProvider) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

const insertSubmission = `INSERT INTO submissions (name, email, valid, violations, received_at)
VALUES (:name, :email, :valid, :violations, :received_at)`

func (p *SQLProvider) AppendSubmission(ctx context.Context, s Submission) error {
	violations := s.Outcome.Violations
	if violations == nil {
		violations = []validator.Violation{}
	}
	encoded, err := json.Marshal(violations)
	if err != nil {
		return fmt.Errorf("failed to encode violations: %w", err)
	}

	receivedAt := s.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	row := submissionRow{
		Name:       s.Name,
		Email:      s.Email,
		Valid:      s.Outcome.Valid(),
		Violations: string(encoded),
		ReceivedAt: receivedAt,
	}

	if _, err := p.db.NamedExecContext(ctx, insertSubmission, row); err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

const selectSubmissions = `SELECT id, name, email, valid, violations, received_at
FROM submissions ORDER BY id ASC`

func (p *SQLProvider) ListSubmissions(ctx context.Context) ([]Submission, error) {
	var rows []submissionRow
	if err := p.db.SelectContext(ctx, &rows, selectSubmissions); err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	out := make([]Submission, 0, len(rows))
	for _, row := range rows {
		var violations []validator.Violation
		if err := json.Unmarshal([]byte(row.Violations), &violations); err != nil {
			p.logger.Warn("Corrupt violations column", "id", row.ID, "error", err)
			return nil, fmt.Errorf("failed to decode violations of submission %d: %w", row.ID, err)
		}
		if len(violations) == 0 {
			violations = nil
		}
		out = append(out, Submission{
			Name:       row.Name,
			Email:      row.Email,
			Outcome:    validator.Outcome{Violations: violations},
			ReceivedAt: row.ReceivedAt,
		})
	}
	return out, nil
}
