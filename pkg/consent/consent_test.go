package consent

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAllowAll(t *testing.T) {
	store := AllowAll{}
	granted, err := store.IsGranted(context.Background(), "any-purpose", "any-subject")
	if err != nil {
		t.Fatalf("IsGranted() unexpected error: %v", err)
	}
	if !granted {
		t.Error("AllowAll denied a request")
	}
}

func TestStaticStore(t *testing.T) {
	tests := []struct {
		name         string
		defaultAllow bool
		setup        func(*StaticStore)
		purpose      string
		subject      string
		want         bool
	}{
		{
			name:         "default deny for unknown pair",
			defaultAllow: false,
			setup:        func(s *StaticStore) {},
			purpose:      "analytics", subject: "s1",
			want: false,
		},
		{
			name:         "default allow for unknown pair",
			defaultAllow: true,
			setup:        func(s *StaticStore) {},
			purpose:      "analytics", subject: "s1",
			want: true,
		},
		{
			name:         "exact grant",
			defaultAllow: false,
			setup:        func(s *StaticStore) { s.Set("analytics", "s1", true) },
			purpose:      "analytics", subject: "s1",
			want: true,
		},
		{
			name:         "exact denial overrides purpose wildcard",
			defaultAllow: false,
			setup: func(s *StaticStore) {
				s.Set("analytics", "*", true)
				s.Set("analytics", "s1", false)
			},
			purpose: "analytics", subject: "s1",
			want: false,
		},
		{
			name:         "purpose wildcard",
			defaultAllow: false,
			setup:        func(s *StaticStore) { s.Set("analytics", "*", true) },
			purpose:      "analytics", subject: "anyone",
			want: true,
		},
		{
			name:         "subject wildcard",
			defaultAllow: false,
			setup:        func(s *StaticStore) { s.Set("*", "s1", true) },
			purpose:      "whatever", subject: "s1",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStaticStore(tt.defaultAllow)
			tt.setup(store)
			got, err := store.IsGranted(context.Background(), tt.purpose, tt.subject)
			if err != nil {
				t.Fatalf("IsGranted() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsGranted(%s, %s) = %v, want %v", tt.purpose, tt.subject, got, tt.want)
			}
		})
	}
}

func writeRules(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "consent.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	return path
}

func TestFileStoreLoad(t *testing.T) {
	path := writeRules(t, t.TempDir(), `
default_allow: false
grants:
  - purpose: analytics
    subject: s1
    granted: true
  - purpose: marketing
    subject: "*"
    granted: false
`)

	store, err := NewFileStore(path, nil)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if granted, _ := store.IsGranted(ctx, "analytics", "s1"); !granted {
		t.Error("expected grant for (analytics, s1)")
	}
	if granted, _ := store.IsGranted(ctx, "marketing", "anyone"); granted {
		t.Error("expected denial for (marketing, *)")
	}
	if granted, _ := store.IsGranted(ctx, "other", "s9"); granted {
		t.Error("expected default deny for unknown pair")
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	if _, err := NewFileStore(filepath.Join(t.TempDir(), "absent.yaml"), nil); err == nil {
		t.Error("NewFileStore() on a missing file should fail")
	}
}

func TestFileStoreCloseIdempotent(t *testing.T) {
	path := writeRules(t, t.TempDir(), "default_allow: true\n")

	store, err := NewFileStore(path, nil)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	if err := store.Watch(); err != nil {
		t.Fatalf("Watch() error: %v", err)
	}

	if err := store.Close(); err != nil {
		t.Fatalf("first Close() error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}

func TestFileStoreReloadOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeRules(t, dir, "default_allow: false\n")

	store, err := NewFileStore(path, nil)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	defer store.Close()
	if err := store.Watch(); err != nil {
		t.Fatalf("Watch() error: %v", err)
	}

	ctx := context.Background()
	if granted, _ := store.IsGranted(ctx, "analytics", "s1"); granted {
		t.Fatal("expected deny before rewrite")
	}

	writeRules(t, dir, `
default_allow: false
grants:
  - purpose: analytics
    subject: s1
    granted: true
`)

	deadline := time.After(3 * time.Second)
	for {
		granted, _ := store.IsGranted(ctx, "analytics", "s1")
		if granted {
			return
		}
		select {
		case <-deadline:
			t.Fatal("rules file change was not picked up")
		case <-time.After(20 * time.Millisecond):
		}
	}
}
