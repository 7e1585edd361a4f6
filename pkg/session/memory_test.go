package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RipScriptos/Oversight/pkg/report"
)

func TestNewID(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	if got := NewID(ts); got != "session_1700000000" {
		t.Errorf("NewID() = %q, want session_1700000000", got)
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := &Session{ID: "session_1", Topic: "Solar Power", ReportType: report.Detailed, Status: StatusRunning}
	second := &Session{ID: "session_2", Topic: "Wind Energy", ReportType: report.Summary, Status: StatusRunning}

	if err := store.Append(ctx, first); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Append(ctx, second); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := store.Get(ctx, "session_1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Topic != "Solar Power" {
		t.Errorf("Get() topic = %q, want Solar Power", got.Topic)
	}

	if _, err := store.Get(ctx, "session_missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() unknown id error = %v, want ErrNotFound", err)
	}

	sessions, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("List() = %d sessions, want 2", len(sessions))
	}
	// Insertion order is the contract.
	if sessions[0].ID != "session_1" || sessions[1].ID != "session_2" {
		t.Errorf("List() order = %s, %s", sessions[0].ID, sessions[1].ID)
	}

	updated := &Session{ID: "session_1", Topic: "Solar Power", Status: StatusCompleted, ProcessingTime: 1.5}
	if err := store.Update(ctx, updated); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ = store.Get(ctx, "session_1")
	if got.Status != StatusCompleted {
		t.Errorf("status after update = %q, want completed", got.Status)
	}

	if err := store.Update(ctx, &Session{ID: "session_missing"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() unknown id error = %v, want ErrNotFound", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	sessions, _ = store.List(ctx)
	if len(sessions) != 0 {
		t.Errorf("List() after clear = %d sessions, want 0", len(sessions))
	}
}

func TestMemoryStoreDetachesSessions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	original := &Session{
		ID:             "session_1",
		Topic:          "Solar Power",
		Status:         StatusRunning,
		StepsCompleted: []string{"topic_input"},
	}
	if err := store.Append(ctx, original); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	// Mutations on the caller's session must not show up in the store
	// until it calls Update.
	original.Status = StatusCompleted
	original.StepsCompleted = append(original.StepsCompleted, "report_generation")

	stored, err := store.Get(ctx, "session_1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.Status != StatusRunning {
		t.Errorf("stored status = %q, want running before Update", stored.Status)
	}
	if len(stored.StepsCompleted) != 1 {
		t.Errorf("stored steps = %v, want the appended step held back", stored.StepsCompleted)
	}

	// Mutations on a returned session must not reach the store either.
	stored.Topic = "Wind Energy"
	stored.StepsCompleted[0] = "tampered"

	again, _ := store.Get(ctx, "session_1")
	if again.Topic != "Solar Power" {
		t.Errorf("stored topic = %q, reader mutation leaked in", again.Topic)
	}
	if again.StepsCompleted[0] != "topic_input" {
		t.Errorf("stored steps = %v, reader mutation leaked in", again.StepsCompleted)
	}

	listed, _ := store.List(ctx)
	listed[0].Topic = "tampered"
	final, _ := store.Get(ctx, "session_1")
	if final.Topic != "Solar Power" {
		t.Errorf("stored topic = %q, List() leaked a live pointer", final.Topic)
	}
}
