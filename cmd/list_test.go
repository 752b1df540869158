package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/byxorna/fable/pkg/config"
)

func TestPrintStories(t *testing.T) {
	cfg := config.Default
	cfg.Directory = "../test/stories"

	var b bytes.Buffer
	if err := printStories(context.Background(), &b, &cfg, "", false); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two valid stories, got %q", b.String())
	}
	if !strings.HasPrefix(lines[0], "The Lantern Keeper\t3 scenes\t") {
		t.Fatalf("unexpected line %q", lines[0])
	}

	b.Reset()
	if err := printStories(context.Background(), &b, &cfg, "fox", false); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(b.String(), "A Fox in the Library\t2 scenes\t") {
		t.Fatalf("unexpected output %q", b.String())
	}
}

func TestPrintStoriesByTitle(t *testing.T) {
	cfg := config.Default
	cfg.Directory = "../test/stories"

	var b bytes.Buffer
	if err := printStories(context.Background(), &b, &cfg, "", true); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two valid stories, got %q", b.String())
	}
	if !strings.HasPrefix(lines[0], "A Fox in the Library\t") {
		t.Fatalf("expected stories sorted by title, got %q", lines[0])
	}
}

func TestPrintStoriesMissingDirectory(t *testing.T) {
	cfg := config.Default
	cfg.Directory = "../test/does-not-exist"
	if err := printStories(context.Background(), &bytes.Buffer{}, &cfg, "", false); err == nil {
		t.Fatal("expected a missing directory to fail")
	}
}
