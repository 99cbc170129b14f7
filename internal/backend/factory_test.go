package backend

import (
	"context"
	"path/filepath"
	"testing"
)

func TestTypeIsValid(t *testing.T) {
	cases := []struct {
		typ  Type
		want bool
	}{
		{SQLiteBackend, true},
		{MemoryBackend, true},
		{Type("sheets"), false},
		{Type(""), false},
	}
	for _, tc := range cases {
		if got := tc.typ.IsValid(); got != tc.want {
			t.Fatalf("%q: expected %v, got %v", tc.typ, tc.want, got)
		}
	}
}

func TestCreateBackendInvalidType(t *testing.T) {
	f := NewFactory(nil)
	if _, err := f.CreateBackend(context.Background(), Config{Type: "postgres"}); err == nil {
		t.Fatalf("expected error for unknown backend type")
	}
}

func TestCreateMemoryBackend(t *testing.T) {
	f := NewFactory(nil)
	result, err := f.CreateBackend(context.Background(), Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Store == nil {
		t.Fatalf("expected store")
	}
	if result.Events != nil {
		t.Fatalf("memory backend should not have an event publisher")
	}
}

func TestCreateSQLiteBackend(t *testing.T) {
	f := NewFactory(nil)
	result, err := f.CreateBackend(context.Background(), Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "ledger.db"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Store == nil {
		t.Fatalf("expected store")
	}
	if result.Cleanup == nil {
		t.Fatalf("expected cleanup for sqlite backend")
	}
	if err := result.Cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
}
