package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"research-saver/internal/journal"
	"research-saver/internal/logging"
	"research-saver/internal/metrics"
	"research-saver/internal/model"
	"research-saver/internal/store"
)

type recordingJournal struct {
	mu      sync.Mutex
	entries []journal.Entry
	err     error
}

func (j *recordingJournal) Record(_ context.Context, e journal.Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, e)
	return j.err
}

func newTestService(t *testing.T, j journal.Journal, subdirs ...string) (*ResearchService, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "research")
	if err := os.Mkdir(root, 0755); err != nil {
		t.Fatal(err)
	}
	for _, d := range subdirs {
		if err := os.Mkdir(filepath.Join(root, d), 0755); err != nil {
			t.Fatal(err)
		}
	}
	return NewResearchService(store.NewFileStore(root), j, metrics.New(), logging.Discard()), root
}

func decode(t *testing.T, b []byte) interface{} {
	t.Helper()
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("invalid JSON %q: %v", b, err)
	}
	return v
}

func TestPrettyJSON(t *testing.T) {
	raw := []byte(`{"x":1.50,"b":[1,2],"a":{"n":null}}`)
	out := PrettyJSON(raw)

	if !strings.Contains(string(out), "\n    \"x\": 1.50") {
		t.Errorf("expected 4-space indentation and original number literal, got:\n%s", out)
	}
	if strings.Index(string(out), `"x"`) > strings.Index(string(out), `"a"`) {
		t.Error("key order should be preserved")
	}
	if diff := cmp.Diff(decode(t, raw), decode(t, out)); diff != "" {
		t.Errorf("pretty output changed the value (-want +got):\n%s", diff)
	}
}

func TestPrettyJSONScalars(t *testing.T) {
	for _, raw := range []string{`5`, `"text"`, `true`, `null`, `[]`, `{}`} {
		out := PrettyJSON([]byte(raw))
		if diff := cmp.Diff(decode(t, []byte(raw)), decode(t, out)); diff != "" {
			t.Errorf("PrettyJSON(%s) mismatch (-want +got):\n%s", raw, diff)
		}
	}
}

func TestSaveWritesSanitizedPath(t *testing.T) {
	j := &recordingJournal{}
	svc, root := newTestService(t, j, "sub")

	ctx := logging.WithRequestID(context.Background(), "req-42")
	res, err := svc.Save(ctx, &model.SaveRequest{
		FileName:  "../../etc/passwd",
		Directory: "x/y/sub",
		Data:      json.RawMessage(`{"x":1}`),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	want := filepath.Join(root, "sub", "passwd")
	if res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}

	got, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	if res.Bytes != len(got) {
		t.Errorf("Bytes = %d, file has %d", res.Bytes, len(got))
	}
	if diff := cmp.Diff(map[string]interface{}{"x": float64(1)}, decode(t, got)); diff != "" {
		t.Errorf("file content mismatch (-want +got):\n%s", diff)
	}

	if len(j.entries) != 1 {
		t.Fatalf("journal entries = %d, want 1", len(j.entries))
	}
	e := j.entries[0]
	if e.RequestID != "req-42" || e.Directory != "sub" || e.FileName != "passwd" || e.Outcome != model.OutcomeSaved {
		t.Errorf("unexpected journal entry: %+v", e)
	}
}

func TestSaveWriteFailure(t *testing.T) {
	j := &recordingJournal{}
	svc, _ := newTestService(t, j)

	_, err := svc.Save(context.Background(), &model.SaveRequest{
		FileName:  "a.json",
		Directory: "missing",
		Data:      json.RawMessage(`[1]`),
	})
	if err == nil {
		t.Fatal("expected error when the subdirectory does not exist")
	}

	if len(j.entries) != 1 || j.entries[0].Outcome != model.OutcomeWriteFailed || j.entries[0].Error == "" {
		t.Errorf("failed write should be journaled with its error: %+v", j.entries)
	}
}

func TestSaveJournalErrorIsIgnored(t *testing.T) {
	j := &recordingJournal{err: errors.New("db down")}
	svc, _ := newTestService(t, j)

	if _, err := svc.Save(context.Background(), &model.SaveRequest{
		FileName: "a.json",
		Data:     json.RawMessage(`"ok"`),
	}); err != nil {
		t.Errorf("journal failure must not fail the save: %v", err)
	}
}

func TestNilJournalUsesDiscard(t *testing.T) {
	svc, _ := newTestService(t, nil)
	if svc.journal != journal.Discard {
		t.Error("nil journal should be replaced with journal.Discard")
	}
}
