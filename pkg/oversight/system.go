package oversight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/RipScriptos/Oversight/pkg/architect"
	"github.com/RipScriptos/Oversight/pkg/compiler"
	"github.com/RipScriptos/Oversight/pkg/report"
	"github.com/RipScriptos/Oversight/pkg/session"
)

// Step names recorded on the session as each stage finishes.
const (
	StepTopicInput     = "topic_input"
	StepCompilation    = "information_compilation"
	StepCategorization = "information_categorization"
	StepReport         = "report_generation"
)

// System orchestrates the compile, categorize, and render stages and owns the
// session ledger. The store is injected so hosts can pick memory or Postgres
// and tests can isolate state.
type System struct {
	Compiler *compiler.Compiler
	Store    session.Store
	Logger   *slog.Logger
}

func New(completer compiler.Completer, store session.Store) *System {
	return &System{
		Compiler: compiler.New(completer),
		Store:    store,
		Logger:   slog.Default(),
	}
}

// Outcome is the full payload of a successful run.
type Outcome struct {
	Success               bool           `json:"success"`
	SessionID             string         `json:"session_id"`
	Topic                 string         `json:"topic"`
	ReportType            string         `json:"report_type"`
	ProcessingTime        float64        `json:"processing_time"`
	ResearchSummary       string         `json:"research_summary"`
	CategorizationSummary string         `json:"categorization_summary"`
	FinalReport           *report.Report `json:"final_report"`
	TextReport            string         `json:"text_report"`
	MarkdownReport        string         `json:"markdown_report"`
}

// ProcessTopic runs the full pipeline for one topic submission. The run is
// atomic: the session either completes with a full report attached or is
// marked failed with no report. Validation failures happen before a session
// is created and before any completion-service call.
func (s *System) ProcessTopic(ctx context.Context, topic, reportTypeName string) (*Outcome, error) {
	cleaned, err := validateTopic(topic)
	if err != nil {
		return nil, err
	}

	if reportTypeName == "" {
		reportTypeName = report.Detailed.String()
	}
	reportType, ok := report.ParseType(reportTypeName)
	if !ok {
		return nil, validationErr(fmt.Sprintf("Invalid report type. Available types: %s", strings.Join(report.TypeNames(), ", ")))
	}

	start := time.Now()
	sess := &session.Session{
		ID:             session.NewID(start),
		Topic:          cleaned,
		ReportType:     reportType,
		Status:         session.StatusRunning,
		StepsCompleted: []string{StepTopicInput},
		StartedAt:      start,
	}
	if err := s.Store.Append(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	s.Logger.Info("Processing topic", "session_id", sess.ID, "topic", cleaned, "report_type", reportType.String())

	bundle, err := s.Compiler.Compile(ctx, cleaned)
	if err != nil {
		return nil, s.fail(ctx, sess, fmt.Errorf("information compilation failed: %w", err))
	}
	sess.Results.Research = &bundle
	sess.StepsCompleted = append(sess.StepsCompleted, StepCompilation)
	if err := s.Store.Update(ctx, sess); err != nil {
		s.Logger.Error("Failed to save session progress", "session_id", sess.ID, "error", err)
	}

	categorized := architect.Categorize(bundle)
	sess.Results.Categorized = &categorized
	sess.StepsCompleted = append(sess.StepsCompleted, StepCategorization)
	if err := s.Store.Update(ctx, sess); err != nil {
		s.Logger.Error("Failed to save session progress", "session_id", sess.ID, "error", err)
	}

	finalReport := report.Generate(categorized, reportType)
	sess.Results.Report = &finalReport
	sess.StepsCompleted = append(sess.StepsCompleted, StepReport)

	sess.Status = session.StatusCompleted
	sess.EndedAt = time.Now()
	sess.ProcessingTime = sess.EndedAt.Sub(sess.StartedAt).Seconds()
	if err := s.Store.Update(ctx, sess); err != nil {
		s.Logger.Error("Failed to save completed session", "session_id", sess.ID, "error", err)
	}

	s.Logger.Info("Processing completed", "session_id", sess.ID, "seconds", sess.ProcessingTime)

	return &Outcome{
		Success:               true,
		SessionID:             sess.ID,
		Topic:                 cleaned,
		ReportType:            reportType.String(),
		ProcessingTime:        sess.ProcessingTime,
		ResearchSummary:       compiler.Summary(bundle),
		CategorizationSummary: architect.Summary(categorized),
		FinalReport:           &finalReport,
		TextReport:            report.ExportText(finalReport),
		MarkdownReport:        report.ExportMarkdown(finalReport),
	}, nil
}

// fail marks the session terminal with no report attached.
func (s *System) fail(ctx context.Context, sess *session.Session, cause error) error {
	sess.Status = session.StatusFailed
	sess.Error = cause.Error()
	sess.EndedAt = time.Now()
	sess.ProcessingTime = sess.EndedAt.Sub(sess.StartedAt).Seconds()
	sess.Results = session.Results{}

	if err := s.Store.Update(ctx, sess); err != nil {
		s.Logger.Error("Failed to record session failure", "session_id", sess.ID, "error", err)
	}
	s.Logger.Error("Processing failed", "session_id", sess.ID, "error", cause)
	return cause
}

func validateTopic(topic string) (string, error) {
	cleaned := strings.TrimSpace(topic)
	if cleaned == "" {
		return "", validationErr("Topic cannot be empty")
	}
	// Bounds count characters, not bytes, so multibyte topics are measured
	// the same way they read.
	switch length := utf8.RuneCountInString(cleaned); {
	case length < 2:
		return "", validationErr("Topic must be at least 2 characters long")
	case length > 200:
		return "", validationErr("Topic must be less than 200 characters")
	}
	return cleaned, nil
}

// StatusInfo is the status-endpoint view of a session.
type StatusInfo struct {
	SessionID      string   `json:"session_id"`
	Topic          string   `json:"topic"`
	Status         string   `json:"status"`
	StepsCompleted []string `json:"steps_completed"`
	ProcessingTime float64  `json:"processing_time"`
}

func (s *System) Status(ctx context.Context, id string) (*StatusInfo, error) {
	sess, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &StatusInfo{
		SessionID:      sess.ID,
		Topic:          sess.Topic,
		Status:         string(sess.Status),
		StepsCompleted: sess.StepsCompleted,
		ProcessingTime: sess.ProcessingTime,
	}, nil
}

func (s *System) Results(ctx context.Context, id string) (*session.Results, error) {
	sess, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &sess.Results, nil
}

// Export serializes a session in the requested format: json, text, or
// markdown. Text and markdown require a completed report.
func (s *System) Export(ctx context.Context, id, format string) (string, error) {
	sess, err := s.Store.Get(ctx, id)
	if err != nil {
		return "", err
	}

	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(sess, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal session: %w", err)
		}
		return string(data), nil
	case "text":
		if sess.Results.Report == nil {
			return "", session.ErrNotFound
		}
		return report.ExportText(*sess.Results.Report), nil
	case "markdown":
		if sess.Results.Report == nil {
			return "", session.ErrNotFound
		}
		return report.ExportMarkdown(*sess.Results.Report), nil
	default:
		return "", validationErr(fmt.Sprintf("Unknown export format: %s", format))
	}
}

// HistoryEntry is the per-session summary returned by History.
type HistoryEntry struct {
	SessionID      string  `json:"session_id"`
	Topic          string  `json:"topic"`
	ReportType     string  `json:"report_type"`
	Status         string  `json:"status"`
	ProcessingTime float64 `json:"processing_time"`
	Timestamp      int64   `json:"timestamp"`
}

func (s *System) History(ctx context.Context) ([]HistoryEntry, error) {
	sessions, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	history := make([]HistoryEntry, 0, len(sessions))
	for _, sess := range sessions {
		history = append(history, HistoryEntry{
			SessionID:      sess.ID,
			Topic:          sess.Topic,
			ReportType:     sess.ReportType.String(),
			Status:         string(sess.Status),
			ProcessingTime: sess.ProcessingTime,
			Timestamp:      sess.StartedAt.Unix(),
		})
	}
	return history, nil
}

// Stats aggregates ledger-wide usage counts.
type Stats struct {
	TotalSessions         int     `json:"total_sessions"`
	SuccessfulSessions    int     `json:"successful_sessions"`
	FailedSessions        int     `json:"failed_sessions"`
	SuccessRate           float64 `json:"success_rate"`
	AverageProcessingTime float64 `json:"average_processing_time"`
	UniqueTopicsProcessed int     `json:"unique_topics_processed"`
	TotalTopicsProcessed  int     `json:"total_topics_processed"`
}

func (s *System) Statistics(ctx context.Context) (*Stats, error) {
	sessions, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalSessions: len(sessions)}
	if len(sessions) == 0 {
		return stats, nil
	}

	topics := make(map[string]bool)
	totalTime := 0.0
	for _, sess := range sessions {
		if sess.Status == session.StatusCompleted {
			stats.SuccessfulSessions++
		}
		totalTime += sess.ProcessingTime
		topics[sess.Topic] = true
	}

	stats.FailedSessions = stats.TotalSessions - stats.SuccessfulSessions
	stats.SuccessRate = float64(stats.SuccessfulSessions) / float64(stats.TotalSessions) * 100
	stats.AverageProcessingTime = totalTime / float64(stats.TotalSessions)
	stats.UniqueTopicsProcessed = len(topics)
	stats.TotalTopicsProcessed = len(sessions)

	return stats, nil
}

func (s *System) ClearHistory(ctx context.Context) error {
	return s.Store.Clear(ctx)
}

// ReportTypes lists the available report-type names.
func (s *System) ReportTypes() []string {
	return report.TypeNames()
}

// ValidReportType reports whether name is a known report type.
func (s *System) ValidReportType(name string) bool {
	_, ok := report.ParseType(name)
	return ok
}
