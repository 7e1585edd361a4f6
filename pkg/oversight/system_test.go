package oversight

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/RipScriptos/Oversight/pkg/compiler"
	"github.com/RipScriptos/Oversight/pkg/session"
)

type stubCompleter struct {
	mu    sync.Mutex
	calls int
	reply string
	delay time.Duration
}

func (s *stubCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.reply, nil
}

// The stub reply deliberately carries high-tier scoring keywords. Plain
// filler text scores at most 0.36 under the scoring constants, which leaves
// the high and medium buckets empty and the summary report without key
// points; keyword-rich content exercises the populated path.
func newTestSystem() (*System, *stubCompleter, *session.MemoryStore) {
	stub := &stubCompleter{reply: "Renewable energy provides essential and significant benefits for modern implementation strategies."}
	store := session.NewMemoryStore()
	return New(stub, store), stub, store
}

func TestProcessTopicCompletes(t *testing.T) {
	system, stub, store := newTestSystem()
	ctx := context.Background()

	outcome, err := system.ProcessTopic(ctx, "Renewable Energy", "summary")
	if err != nil {
		t.Fatalf("ProcessTopic() error = %v", err)
	}

	if !outcome.Success {
		t.Error("outcome success = false")
	}
	if outcome.Topic != "Renewable Energy" {
		t.Errorf("topic = %q", outcome.Topic)
	}
	if outcome.ReportType != "summary" {
		t.Errorf("report type = %q, want summary", outcome.ReportType)
	}
	if stub.calls != compiler.AngleCount {
		t.Errorf("completer calls = %d, want %d", stub.calls, compiler.AngleCount)
	}
	if outcome.FinalReport == nil {
		t.Fatal("final report is nil")
	}
	if outcome.TextReport == "" || outcome.MarkdownReport == "" {
		t.Error("rendered exports are empty")
	}
	if !strings.Contains(outcome.ResearchSummary, "Renewable Energy") {
		t.Error("research summary missing topic")
	}

	sess, err := store.Get(ctx, outcome.SessionID)
	if err != nil {
		t.Fatalf("session not in store: %v", err)
	}
	if sess.Status != session.StatusCompleted {
		t.Errorf("session status = %q, want completed", sess.Status)
	}

	wantSteps := []string{StepTopicInput, StepCompilation, StepCategorization, StepReport}
	if len(sess.StepsCompleted) != len(wantSteps) {
		t.Fatalf("steps = %v, want %v", sess.StepsCompleted, wantSteps)
	}
	for i := range wantSteps {
		if sess.StepsCompleted[i] != wantSteps[i] {
			t.Errorf("step %d = %q, want %q", i, sess.StepsCompleted[i], wantSteps[i])
		}
	}
	if sess.Results.Research == nil || sess.Results.Categorized == nil || sess.Results.Report == nil {
		t.Error("session results incomplete after success")
	}
}

func TestProcessTopicDefaultsReportType(t *testing.T) {
	system, _, _ := newTestSystem()

	outcome, err := system.ProcessTopic(context.Background(), "Cybersecurity", "")
	if err != nil {
		t.Fatalf("ProcessTopic() error = %v", err)
	}
	if outcome.ReportType != "detailed" {
		t.Errorf("report type = %q, want detailed", outcome.ReportType)
	}
}

func TestProcessTopicValidation(t *testing.T) {
	tests := []struct {
		name       string
		topic      string
		reportType string
		wantMsg    string
	}{
		{"Empty topic", "", "detailed", "Topic cannot be empty"},
		{"Whitespace topic", "   ", "detailed", "Topic cannot be empty"},
		{"Too short", "A", "detailed", "Topic must be at least 2 characters long"},
		{"Too long", strings.Repeat("x", 201), "detailed", "Topic must be less than 200 characters"},
		{"Unknown report type", "Solar Power", "quarterly", "Invalid report type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			system, stub, store := newTestSystem()

			_, err := system.ProcessTopic(context.Background(), tt.topic, tt.reportType)
			if err == nil {
				t.Fatal("ProcessTopic() succeeded, want validation error")
			}
			if !IsValidation(err) {
				t.Errorf("error %v is not a ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantMsg)
			}

			// Rejected input reaches neither the completion service nor the ledger.
			if stub.calls != 0 {
				t.Errorf("completer called %d times before validation", stub.calls)
			}
			sessions, _ := store.List(context.Background())
			if len(sessions) != 0 {
				t.Errorf("ledger has %d sessions after rejected input", len(sessions))
			}
		})
	}
}

func TestTopicBoundsCountRunes(t *testing.T) {
	system, _, _ := newTestSystem()
	ctx := context.Background()

	// 150 two-byte runes: 300 bytes, but well inside the character limit.
	long := strings.Repeat("é", 150)
	outcome, err := system.ProcessTopic(ctx, long, "summary")
	if err != nil {
		t.Fatalf("ProcessTopic() with multibyte topic error = %v", err)
	}
	if outcome.Topic != long {
		t.Errorf("topic = %q, want the multibyte topic unchanged", outcome.Topic)
	}

	if _, err := system.ProcessTopic(ctx, "é", "summary"); err == nil || !strings.Contains(err.Error(), "at least 2 characters") {
		t.Errorf("single-rune topic error = %v, want minimum-length rejection", err)
	}

	if _, err := system.ProcessTopic(ctx, strings.Repeat("é", 201), "summary"); err == nil || !strings.Contains(err.Error(), "less than 200 characters") {
		t.Errorf("201-rune topic error = %v, want maximum-length rejection", err)
	}
}

func TestStatusDuringProcessing(t *testing.T) {
	stub := &stubCompleter{
		reply: "Essential and significant findings with practical benefits.",
		delay: 2 * time.Millisecond,
	}
	store := session.NewMemoryStore()
	system := New(stub, store)
	ctx := context.Background()

	type result struct {
		outcome *Outcome
		err     error
	}
	done := make(chan result, 1)
	go func() {
		outcome, err := system.ProcessTopic(ctx, "Solar Power", "summary")
		done <- result{outcome, err}
	}()

	// Hammer the read paths while the pipeline mutates its session. The
	// ledger serves snapshots, so none of these reads may observe a torn
	// session or trip the race detector.
	for {
		select {
		case res := <-done:
			if res.err != nil {
				t.Fatalf("ProcessTopic() error = %v", res.err)
			}
			status, err := system.Status(ctx, res.outcome.SessionID)
			if err != nil {
				t.Fatalf("Status() after completion error = %v", err)
			}
			if status.Status != string(session.StatusCompleted) {
				t.Errorf("final status = %q, want completed", status.Status)
			}
			return
		default:
			if _, err := system.History(ctx); err != nil {
				t.Fatalf("History() during processing error = %v", err)
			}
			sessions, err := store.List(ctx)
			if err != nil {
				t.Fatalf("List() during processing error = %v", err)
			}
			for _, s := range sessions {
				if _, err := system.Status(ctx, s.ID); err != nil {
					t.Fatalf("Status() during processing error = %v", err)
				}
			}
		}
	}
}

func TestStatusAndResults(t *testing.T) {
	system, _, _ := newTestSystem()
	ctx := context.Background()

	outcome, err := system.ProcessTopic(ctx, "Digital Marketing", "executive")
	if err != nil {
		t.Fatalf("ProcessTopic() error = %v", err)
	}

	status, err := system.Status(ctx, outcome.SessionID)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.Status != "completed" {
		t.Errorf("status = %q, want completed", status.Status)
	}
	if status.Topic != "Digital Marketing" {
		t.Errorf("status topic = %q", status.Topic)
	}

	results, err := system.Results(ctx, outcome.SessionID)
	if err != nil {
		t.Fatalf("Results() error = %v", err)
	}
	if results.Report == nil {
		t.Error("results report is nil")
	}

	if _, err := system.Status(ctx, "session_unknown"); err == nil {
		t.Error("Status() for unknown session should fail")
	}
}

func TestExportFormats(t *testing.T) {
	system, _, _ := newTestSystem()
	ctx := context.Background()

	outcome, err := system.ProcessTopic(ctx, "Climate Change", "technical")
	if err != nil {
		t.Fatalf("ProcessTopic() error = %v", err)
	}

	jsonOut, err := system.Export(ctx, outcome.SessionID, "json")
	if err != nil {
		t.Fatalf("Export(json) error = %v", err)
	}
	if !strings.Contains(jsonOut, `"session_id"`) {
		t.Error("json export missing session_id field")
	}

	textOut, err := system.Export(ctx, outcome.SessionID, "text")
	if err != nil {
		t.Fatalf("Export(text) error = %v", err)
	}
	if !strings.Contains(textOut, "OVERSIGHT AI SYSTEM - INFORMATIVE REPORT") {
		t.Error("text export missing report banner")
	}

	mdOut, err := system.Export(ctx, outcome.SessionID, "markdown")
	if err != nil {
		t.Fatalf("Export(markdown) error = %v", err)
	}
	if !strings.Contains(mdOut, "## 3. Document Content") {
		t.Error("markdown export missing content section")
	}

	if _, err := system.Export(ctx, outcome.SessionID, "pdf"); !IsValidation(err) {
		t.Errorf("Export(pdf) error = %v, want validation error", err)
	}
}

func TestHistoryAndStatistics(t *testing.T) {
	system, _, _ := newTestSystem()
	ctx := context.Background()

	topics := []string{"Solar Power", "Wind Energy", "Solar Power"}
	for _, topic := range topics {
		if _, err := system.ProcessTopic(ctx, topic, "summary"); err != nil {
			t.Fatalf("ProcessTopic(%q) error = %v", topic, err)
		}
	}

	history, err := system.History(ctx)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history = %d entries, want 3", len(history))
	}

	stats, err := system.Statistics(ctx)
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}
	if stats.TotalSessions != 3 {
		t.Errorf("total sessions = %d, want 3", stats.TotalSessions)
	}
	if stats.SuccessfulSessions != 3 || stats.FailedSessions != 0 {
		t.Errorf("success/failure = %d/%d, want 3/0", stats.SuccessfulSessions, stats.FailedSessions)
	}
	if stats.SuccessRate != 100 {
		t.Errorf("success rate = %v, want 100", stats.SuccessRate)
	}
	if stats.UniqueTopicsProcessed != 2 {
		t.Errorf("unique topics = %d, want 2", stats.UniqueTopicsProcessed)
	}

	if err := system.ClearHistory(ctx); err != nil {
		t.Fatalf("ClearHistory() error = %v", err)
	}
	stats, _ = system.Statistics(ctx)
	if stats.TotalSessions != 0 {
		t.Errorf("total sessions after clear = %d, want 0", stats.TotalSessions)
	}
}

func TestReportTypes(t *testing.T) {
	system, _, _ := newTestSystem()

	want := []string{"executive", "detailed", "technical", "summary"}
	got := system.ReportTypes()
	if len(got) != len(want) {
		t.Fatalf("ReportTypes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("type %d = %q, want %q", i, got[i], want[i])
		}
	}

	if !system.ValidReportType("executive") {
		t.Error("executive should be valid")
	}
	if system.ValidReportType("quarterly") {
		t.Error("quarterly should be invalid")
	}
}
