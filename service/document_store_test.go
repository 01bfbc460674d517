package service

import (
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/codekivy/kivybot-be/types"
)

// countingExtractor records every Extract call so tests can assert the
// cache prevented re-extraction.
type countingExtractor struct {
	calls int
	fail  error
}

func (e *countingExtractor) Extract(name, mimeType string, data []byte) (string, error) {
	e.calls++
	if e.fail != nil {
		return "", e.fail
	}
	return "text of " + string(data), nil
}

func newTestStore(extractor Extractor) *DocumentStore {
	return NewDocumentStore(extractor, 0, zap.NewNop())
}

func TestResolveIdempotent(t *testing.T) {
	extractor := &countingExtractor{}
	store := newTestStore(extractor)

	raw := []byte("the quick brown fox")
	first, err := store.Resolve("doc.txt", "text/plain", raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := store.Resolve("doc.txt", "text/plain", raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Fatalf("identical bytes yielded different text: %q vs %q", first, second)
	}
	if extractor.calls != 1 {
		t.Fatalf("extractor ran %d times, want 1", extractor.calls)
	}
}

func TestResolveDoesNotCacheFailures(t *testing.T) {
	extractor := &countingExtractor{
		fail: &types.ExtractionError{Kind: types.ExtractionEmpty, Message: "empty"},
	}
	store := newTestStore(extractor)

	raw := []byte("broken")
	if _, err := store.Resolve("doc.txt", "text/plain", raw); err == nil {
		t.Fatal("expected extraction error")
	}

	// A later retry with the same bytes must run the extractor again.
	extractor.fail = nil
	if _, err := store.Resolve("doc.txt", "text/plain", raw); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if extractor.calls != 2 {
		t.Fatalf("extractor ran %d times, want 2", extractor.calls)
	}
}

func TestCacheEvictionIsFIFO(t *testing.T) {
	extractor := &countingExtractor{}
	store := newTestStore(extractor)

	payload := func(i int) []byte { return []byte(fmt.Sprintf("document %02d", i)) }

	for i := 0; i < 11; i++ {
		if _, err := store.Resolve("doc.txt", "text/plain", payload(i)); err != nil {
			t.Fatalf("resolve %d: %v", i, err)
		}
	}
	if extractor.calls != 11 {
		t.Fatalf("expected 11 extractions, got %d", extractor.calls)
	}

	// Re-resolving the later ten must all be cache hits; the first-inserted
	// entry must have been evicted and re-extract.
	for i := 1; i < 11; i++ {
		if _, err := store.Resolve("doc.txt", "text/plain", payload(i)); err != nil {
			t.Fatalf("resolve %d: %v", i, err)
		}
	}
	if extractor.calls != 11 {
		t.Fatalf("later entries were not cached, extractions: %d", extractor.calls)
	}

	if _, err := store.Resolve("doc.txt", "text/plain", payload(0)); err != nil {
		t.Fatalf("resolve evicted entry: %v", err)
	}
	if extractor.calls != 12 {
		t.Fatalf("oldest entry was not evicted, extractions: %d", extractor.calls)
	}
}

func TestSessionIsolation(t *testing.T) {
	store := newTestStore(&countingExtractor{})

	store.SetActiveDocument("A", "doc for A")

	if _, ok := store.GetActiveDocument("B"); ok {
		t.Fatal("session B must not see session A's document")
	}
	text, ok := store.GetActiveDocument("A")
	if !ok || text != "doc for A" {
		t.Fatalf("session A lost its document: %q %v", text, ok)
	}
}

func TestSetActiveDocumentOverwrites(t *testing.T) {
	store := newTestStore(&countingExtractor{})

	store.SetActiveDocument("s", "first")
	store.SetActiveDocument("s", "second")

	text, ok := store.GetActiveDocument("s")
	if !ok || text != "second" {
		t.Fatalf("want overwritten document, got %q %v", text, ok)
	}
	if store.ActiveSessionCount() != 1 {
		t.Fatalf("overwrite must not grow the session count, got %d", store.ActiveSessionCount())
	}
}

func TestClearActiveDocument(t *testing.T) {
	store := newTestStore(&countingExtractor{})

	if store.ClearActiveDocument("missing") {
		t.Fatal("clearing an absent session must report false")
	}

	store.SetActiveDocument("s", "doc")
	if !store.ClearActiveDocument("s") {
		t.Fatal("clearing an existing session must report true")
	}
	if _, ok := store.GetActiveDocument("s"); ok {
		t.Fatal("document survived clear")
	}
}

func TestSessionCapEvictsOldest(t *testing.T) {
	store := NewDocumentStore(&countingExtractor{}, 3, zap.NewNop())

	for _, id := range []string{"s1", "s2", "s3", "s4"} {
		store.SetActiveDocument(id, "doc "+id)
	}

	if _, ok := store.GetActiveDocument("s1"); ok {
		t.Fatal("oldest session should have been dropped at the cap")
	}
	if store.ActiveSessionCount() != 3 {
		t.Fatalf("want 3 sessions, got %d", store.ActiveSessionCount())
	}
}
