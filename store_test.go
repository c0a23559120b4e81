package podsettings

import (
	"path/filepath"
	"reflect"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreGetAbsent(t *testing.T) {
	s := setupTestStore(t)

	v, ok, err := s.Get("podcast_title")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok || v != "" {
		t.Errorf("Get absent = %q (ok=%v), want empty and false", v, ok)
	}
}

func TestStoreSetGet(t *testing.T) {
	s := setupTestStore(t)

	if err := s.Set("podcast_title", "My Show"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, ok, err := s.Get("podcast_title")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || v != "My Show" {
		t.Errorf("Get = %q (ok=%v)", v, ok)
	}
}

func TestStoreOverwrite(t *testing.T) {
	s := setupTestStore(t)

	s.Set("k", "first")
	if err := s.Set("k", "second"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, _, _ := s.Get("k")
	if v != "second" {
		t.Errorf("Get after overwrite = %q", v)
	}
}

func TestStoreEmptyValueDistinctFromAbsent(t *testing.T) {
	s := setupTestStore(t)

	s.Set("k", "")
	v, ok, err := s.Get("k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || v != "" {
		t.Errorf("stored empty = %q (ok=%v), want present", v, ok)
	}
}

func TestStoreDelete(t *testing.T) {
	s := setupTestStore(t)

	s.Set("k", "v")
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Error("key still present after delete")
	}

	// Deleting an absent key is not an error.
	if err := s.Delete("missing"); err != nil {
		t.Errorf("Delete absent = %v", err)
	}
}

func TestJoinSplitValues(t *testing.T) {
	tests := []struct {
		vals   []string
		stored string
		back   []string
	}{
		{[]string{"content", "excerpt"}, ",content,excerpt,", []string{"content", "excerpt"}},
		{[]string{"content"}, ",content,", []string{"content"}},
		{nil, "", nil},
		{[]string{"", "  ", "a"}, ",a,", []string{"a"}},
	}
	for _, tt := range tests {
		if got := JoinValues(tt.vals); got != tt.stored {
			t.Errorf("JoinValues(%v) = %q, want %q", tt.vals, got, tt.stored)
		}
		if got := SplitValues(tt.stored); !reflect.DeepEqual(got, tt.back) {
			t.Errorf("SplitValues(%q) = %v, want %v", tt.stored, got, tt.back)
		}
	}
}

func TestSplitValuesLegacyPlainValue(t *testing.T) {
	// Values stored before the sentinel encoding have no wrapping commas.
	if got := SplitValues("content"); !reflect.DeepEqual(got, []string{"content"}) {
		t.Errorf("SplitValues = %v", got)
	}
}

func TestMemStore(t *testing.T) {
	m := NewMemStore()

	if _, ok, _ := m.Get("k"); ok {
		t.Error("empty store reported a value")
	}
	m.Set("k", "v")
	if v, ok, _ := m.Get("k"); !ok || v != "v" {
		t.Errorf("Get = %q (ok=%v)", v, ok)
	}
	m.Delete("k")
	if _, ok, _ := m.Get("k"); ok {
		t.Error("key still present after delete")
	}
}
