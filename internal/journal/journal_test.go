package journal

import (
	"context"
	"os"
	"testing"
	"time"

	"research-saver/internal/model"
)

func TestDiscard(t *testing.T) {
	if err := Discard.Record(context.Background(), Entry{FileName: "a.json"}); err != nil {
		t.Errorf("Discard.Record() = %v, want nil", err)
	}
}

// 需要真实的PostgreSQL：TEST_DATABASE_URL=postgres://... go test ./internal/journal
func TestPostgresJournal(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	j, err := NewPostgresJournal(url)
	if err != nil {
		t.Fatalf("NewPostgresJournal: %v", err)
	}
	defer j.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := j.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	// 再执行一次应该是幂等的
	if err := j.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema (second run): %v", err)
	}

	entry := Entry{
		RequestID: "test-" + time.Now().Format(time.RFC3339Nano),
		Directory: "sub",
		FileName:  "a.json",
		Path:      "research/sub/a.json",
		Bytes:     14,
		Outcome:   model.OutcomeSaved,
	}
	if err := j.Record(ctx, entry); err != nil {
		t.Fatalf("Record: %v", err)
	}

	var outcome string
	err = j.db.QueryRowContext(ctx,
		`SELECT outcome FROM research_saves WHERE request_id = $1`, entry.RequestID,
	).Scan(&outcome)
	if err != nil {
		t.Fatalf("query recorded entry: %v", err)
	}
	if outcome != string(model.OutcomeSaved) {
		t.Errorf("outcome = %q, want %q", outcome, model.OutcomeSaved)
	}
}
