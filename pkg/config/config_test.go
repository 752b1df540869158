package config

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/byxorna/fable/pkg/book"
	"github.com/kylelemons/godebug/pretty"
	"gopkg.in/go-playground/assert.v1"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestNewFromReader(t *testing.T) {
	c, err := NewFromReader(strings.NewReader(`
directory: /tmp/stories
minSwipeDistance: 80
timing:
  nextMutate: 300ms
  nextClear: 400ms
cancelFlipOnCollapse: true
mouse: false
`))
	if err != nil {
		t.Fatal(err)
	}

	want := Default
	want.Directory = "/tmp/stories"
	want.MinSwipeDistance = 80
	want.Timing = book.Timing{
		NextMutate:     300 * time.Millisecond,
		NextClear:      400 * time.Millisecond,
		PreviousMutate: book.DefaultTiming.PreviousMutate,
		PreviousClear:  book.DefaultTiming.PreviousClear,
	}
	want.CancelFlipOnCollapse = true
	want.Mouse = false

	if diff := pretty.Compare(want, *c); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestNewFromReaderRejects(t *testing.T) {
	testcases := map[string]string{
		"inverted timing": "timing: {nextMutate: 900ms, nextClear: 100ms}",
		"zero distance":   "minSwipeDistance: 0",
		"empty directory": `directory: ""`,
		"negative cell":   "cellWidth: -1",
		"not yaml":        "directory: [",
	}
	for name, in := range testcases {
		t.Run(name, func(t *testing.T) {
			if _, err := NewFromReader(strings.NewReader(in)); err == nil {
				t.Fatalf("expected %q to be rejected", in)
			}
		})
	}
}

func TestLoadMissingFileUsesDefault(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, c.Directory, Default.Directory)
	assert.Equal(t, c.Timing, book.DefaultTiming)
}

func TestLoadEnvOverrides(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "fable.yaml")
	if err := ioutil.WriteFile(fn, []byte("directory: /from/file\nwatch: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FABLE_DIRECTORY", "/from/env")
	t.Setenv("FABLE_WATCH", "false")
	t.Setenv("FABLE_PREVIOUS_CLEAR", "2s")

	c, err := Load(fn)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, c.Directory, "/from/env")
	assert.Equal(t, c.Watch, false)
	assert.Equal(t, c.Timing.PreviousClear, 2*time.Second)
	assert.Equal(t, c.Timing.NextClear, book.DefaultTiming.NextClear)
}

func TestLoadEnvOverrideIsValidated(t *testing.T) {
	t.Setenv("FABLE_NEXT_MUTATE", "5s")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected a mutate delay past the clear delay to be rejected")
	}
}

func TestLoadUnreadable(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(dir); err == nil {
		t.Fatal("expected a directory to be rejected as a config file")
	}
}
