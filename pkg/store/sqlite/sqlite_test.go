package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/matzehuels/forgeboard/pkg/store"
)

func TestBackend(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"memory", func(*testing.T) string { return Memory }},
		{"file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nested", "settings.db") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			b, err := Open(ctx, tt.path(t))
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer b.Close()

			if _, ok, err := b.Load(ctx, "alice"); err != nil || ok {
				t.Fatalf("Load(empty) = ok %v, err %v", ok, err)
			}
			if err := b.Save(ctx, "alice", []byte(`{"a":1}`)); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if err := b.Save(ctx, "alice", []byte(`{"a":2}`)); err != nil {
				t.Fatalf("Save again: %v", err)
			}
			data, ok, err := b.Load(ctx, "alice")
			if err != nil || !ok || string(data) != `{"a":2}` {
				t.Errorf("Load = %q, %v, %v", data, ok, err)
			}
			if _, ok, _ := b.Load(ctx, "bob"); ok {
				t.Error("Load(bob) found alice's document")
			}
		})
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open(context.Background(), ""); err == nil {
		t.Error("Open(\"\") succeeded")
	}
}

func TestClassify(t *testing.T) {
	if !store.IsRetryable(classify(errors.New("database is locked (5) (SQLITE_BUSY)"))) {
		t.Error("busy error not retryable")
	}
	if store.IsRetryable(classify(errors.New("no such table"))) {
		t.Error("schema error retryable")
	}
}

func TestWithStore(t *testing.T) {
	ctx := context.Background()
	b, err := Open(ctx, Memory)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s := store.New(b, nil, nil)
	defer s.Close()

	if err := s.SaveAs(ctx, "alice", "Mine", []string{"stats_value", "audit"}, nil, false); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	snap, err := s.LoadSaved(ctx, "alice", "Mine")
	if err != nil {
		t.Fatalf("LoadSaved: %v", err)
	}
	if len(snap.Order) != 2 || snap.Order[0] != "stats_value" {
		t.Errorf("LoadSaved order = %v", snap.Order)
	}
}
