package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSecret(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write secret: %v", err)
	}
	return path
}

func TestLoadPrecedence(t *testing.T) {
	t.Setenv("AUTOHIRE_TEST_KEY", " from-env ")

	tests := []struct {
		name   string
		src    Source
		expect string
	}{
		{
			name:   "file wins",
			src:    Source{File: writeSecret(t, "from-file\n"), Value: "inline", Env: "AUTOHIRE_TEST_KEY"},
			expect: "from-file",
		},
		{
			name:   "inline before env",
			src:    Source{Value: " inline ", Env: "AUTOHIRE_TEST_KEY"},
			expect: "inline",
		},
		{
			name:   "env last",
			src:    Source{Env: "AUTOHIRE_TEST_KEY"},
			expect: "from-env",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(Source{Name: "gemini api key"})
	if !errors.Is(err, ErrNotConfigured) || !strings.Contains(err.Error(), "gemini api key") {
		t.Fatalf("expected not configured error, got %v", err)
	}

	_, err = Load(Source{Name: "smtp password", File: writeSecret(t, "  \n")})
	if err == nil || errors.Is(err, ErrNotConfigured) || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty file error, got %v", err)
	}

	_, err = Load(Source{File: filepath.Join(t.TempDir(), "missing")})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestOptional(t *testing.T) {
	got, err := Optional(Source{Name: "smtp password", Env: "AUTOHIRE_UNSET_VARIABLE"})
	if err != nil || got != "" {
		t.Fatalf("expected empty secret without error, got %q, %v", got, err)
	}

	if _, err := Optional(Source{File: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatal("expected error for a configured but missing file")
	}
}
