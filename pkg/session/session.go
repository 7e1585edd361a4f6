package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RipScriptos/Oversight/pkg/architect"
	"github.com/RipScriptos/Oversight/pkg/compiler"
	"github.com/RipScriptos/Oversight/pkg/report"
)

type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ErrNotFound is returned by Store.Get for an unknown session id.
var ErrNotFound = errors.New("session not found")

// Results holds the stage outputs attached to a session as it progresses.
type Results struct {
	Research    *compiler.ResearchBundle     `json:"research_data,omitempty"`
	Categorized *architect.CategorizedBundle `json:"categorized_data,omitempty"`
	Report      *report.Report               `json:"final_report,omitempty"`
}

// Session tracks one pipeline run from start to terminal status. It is
// mutated through the store while running and immutable once completed or
// failed.
type Session struct {
	ID             string      `json:"session_id"`
	Topic          string      `json:"topic"`
	ReportType     report.Type `json:"report_type"`
	Status         Status      `json:"status"`
	StepsCompleted []string    `json:"steps_completed"`
	Results        Results     `json:"results"`
	Error          string      `json:"error,omitempty"`
	StartedAt      time.Time   `json:"start_time"`
	EndedAt        time.Time   `json:"end_time"`
	ProcessingTime float64     `json:"processing_time"`
}

// NewID derives a session identifier from the start time. Uniqueness is only
// as good as the clock's second granularity; the ledger does not enforce more.
func NewID(t time.Time) string {
	return fmt.Sprintf("session_%d", t.Unix())
}

// Store is the narrow ledger interface. Implementations must be safe for
// concurrent use: the hosting server handles simultaneous submissions.
type Store interface {
	Append(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context) ([]*Session, error)
	Update(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}
