package storage

import (
	"path/filepath"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	if _, ok := s.GetString("missing"); ok {
		t.Fatal("expected miss for unknown key")
	}

	s.SetString("key", "value")
	v, ok := s.GetString("key")
	if !ok || v != "value" {
		t.Fatalf("got %q/%v, want value/true", v, ok)
	}

	s.Remove("key")
	s.Remove("key") // idempotent
	if _, ok := s.GetString("key"); ok {
		t.Fatal("expected miss after removal")
	}
}

func TestBoltStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forecast.db")

	s, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.SetString("key", "value")
	if err := s.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	s, err = OpenBolt(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	v, ok := s.GetString("key")
	if !ok || v != "value" {
		t.Fatalf("got %q/%v after reopen, want value/true", v, ok)
	}

	s.Remove("key")
	if _, ok := s.GetString("key"); ok {
		t.Fatal("expected miss after removal")
	}
}
