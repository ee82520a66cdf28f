package memory

import (
	"testing"

	"quizpulse/internal/domain"
)

func TestMetaStoreRoundTrip(t *testing.T) {
	store := NewMetaStore()

	if _, ok, _ := store.Get(1); ok {
		t.Fatal("empty store should miss")
	}

	if err := store.Set(1, domain.QuestionMeta{Points: 10, Duration: 30}); err != nil {
		t.Fatalf("set: %v", err)
	}
	meta, ok, err := store.Get(1)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if meta.Points != 10 || meta.Duration != 30 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestMetaStoreOverwrites(t *testing.T) {
	store := NewMetaStore()
	store.Set(2, domain.QuestionMeta{Points: 5, Duration: 10})
	store.Set(2, domain.QuestionMeta{Points: 7, Duration: 15})

	meta, _, _ := store.Get(2)
	if meta.Points != 7 || meta.Duration != 15 {
		t.Fatalf("expected overwrite, got %+v", meta)
	}
	if store.Len() != 1 {
		t.Fatalf("expected a single entry, got %d", store.Len())
	}
}
