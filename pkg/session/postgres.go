package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/RipScriptos/Oversight/pkg/database"
	"github.com/RipScriptos/Oversight/pkg/report"
)

// PostgresStore keeps the ledger in an oversight_sessions table. It is an
// opt-in alternative to MemoryStore with identical semantics over the Store
// interface; history survives restarts.
type PostgresStore struct {
	DB *database.PostgresDB
}

func NewPostgresStore(db *database.PostgresDB) *PostgresStore {
	return &PostgresStore{DB: db}
}

var _ Store = (*PostgresStore)(nil)

func (p *PostgresStore) Append(ctx context.Context, s *Session) error {
	steps, results, err := marshalSession(s)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO oversight_sessions
			(id, topic, report_type, status, steps, results, error_message, started_at, ended_at, processing_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`
	_, err = p.DB.Pool.Exec(ctx, query,
		s.ID, s.Topic, s.ReportType.String(), string(s.Status),
		steps, results, s.Error, s.StartedAt, endedAt(s), s.ProcessingTime)
	if err != nil {
		return fmt.Errorf("failed to append session: %w", err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, id string) (*Session, error) {
	query := `
		SELECT id, topic, report_type, status, steps, results, error_message, started_at, ended_at, processing_time
		FROM oversight_sessions
		WHERE id = $1
	`
	s, err := scanSession(p.DB.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

func (p *PostgresStore) List(ctx context.Context) ([]*Session, error) {
	query := `
		SELECT id, topic, report_type, status, steps, results, error_message, started_at, ended_at, processing_time
		FROM oversight_sessions
		ORDER BY started_at ASC
	`
	rows, err := p.DB.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (p *PostgresStore) Update(ctx context.Context, s *Session) error {
	steps, results, err := marshalSession(s)
	if err != nil {
		return err
	}

	query := `
		UPDATE oversight_sessions
		SET status = $2, steps = $3, results = $4, error_message = $5, ended_at = $6, processing_time = $7
		WHERE id = $1
	`
	tag, err := p.DB.Pool.Exec(ctx, query,
		s.ID, string(s.Status), steps, results, s.Error, endedAt(s), s.ProcessingTime)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStore) Clear(ctx context.Context) error {
	if _, err := p.DB.Pool.Exec(ctx, "DELETE FROM oversight_sessions"); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	return nil
}

func marshalSession(s *Session) (steps []byte, results []byte, err error) {
	steps, err = json.Marshal(s.StepsCompleted)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal steps: %w", err)
	}
	results, err = json.Marshal(s.Results)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal results: %w", err)
	}
	return steps, results, nil
}

func endedAt(s *Session) *time.Time {
	if s.EndedAt.IsZero() {
		return nil
	}
	return &s.EndedAt
}

func scanSession(row pgx.Row) (*Session, error) {
	var (
		s          Session
		typeName   string
		status     string
		steps      []byte
		results    []byte
		endedAtPtr *time.Time
	)

	err := row.Scan(&s.ID, &s.Topic, &typeName, &status, &steps, &results, &s.Error, &s.StartedAt, &endedAtPtr, &s.ProcessingTime)
	if err != nil {
		return nil, err
	}

	s.ReportType, _ = report.ParseType(typeName)
	s.Status = Status(status)
	if endedAtPtr != nil {
		s.EndedAt = *endedAtPtr
	}
	if len(steps) > 0 {
		if err := json.Unmarshal(steps, &s.StepsCompleted); err != nil {
			return nil, fmt.Errorf("failed to unmarshal steps: %w", err)
		}
	}
	if len(results) > 0 {
		if err := json.Unmarshal(results, &s.Results); err != nil {
			return nil, fmt.Errorf("failed to unmarshal results: %w", err)
		}
	}
	return &s, nil
}
