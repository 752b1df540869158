package book

import (
	"testing"
	"time"

	"github.com/kylelemons/godebug/pretty"
)

func TestManualSchedulerOrder(t *testing.T) {
	s := NewManualScheduler()
	var got []string
	s.Schedule(30*time.Millisecond, func() { got = append(got, "c") })
	s.Schedule(10*time.Millisecond, func() { got = append(got, "a") })
	s.Schedule(10*time.Millisecond, func() { got = append(got, "b") })

	s.Advance(20 * time.Millisecond)
	if diff := pretty.Compare([]string{"a", "b"}, got); diff != "" {
		t.Fatalf("unexpected order:\n%s", diff)
	}
	if s.Now() != 20*time.Millisecond {
		t.Fatalf("unexpected clock %s", s.Now())
	}

	s.Advance(10 * time.Millisecond)
	if diff := pretty.Compare([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("unexpected order:\n%s", diff)
	}
	if s.Pending() != 0 {
		t.Fatalf("expected nothing pending, got %d", s.Pending())
	}
}

func TestManualSchedulerStop(t *testing.T) {
	s := NewManualScheduler()
	fired := false
	timer := s.Schedule(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Fatal("expected the first stop to succeed")
	}
	if timer.Stop() {
		t.Fatal("expected a second stop to report false")
	}
	s.Advance(2 * time.Second)
	if fired {
		t.Fatal("stopped timer fired")
	}

	after := s.Schedule(time.Millisecond, func() {})
	s.Advance(time.Millisecond)
	if after.Stop() {
		t.Fatal("stopping a fired timer must report false")
	}
}

func TestManualSchedulerNested(t *testing.T) {
	s := NewManualScheduler()
	var at []time.Duration
	s.Schedule(10*time.Millisecond, func() {
		at = append(at, s.Now())
		s.Schedule(5*time.Millisecond, func() { at = append(at, s.Now()) })
	})

	s.Advance(time.Second)
	want := []time.Duration{10 * time.Millisecond, 15 * time.Millisecond}
	if diff := pretty.Compare(want, at); diff != "" {
		t.Fatalf("unexpected fire times:\n%s", diff)
	}
}

func TestTimingCheck(t *testing.T) {
	testcases := map[string]struct {
		timing Timing
		valid  bool
	}{
		"default":       {DefaultTiming, true},
		"next inverted": {Timing{NextMutate: 800, NextClear: 700, PreviousMutate: 1, PreviousClear: 2}, false},
		"prev equal":    {Timing{NextMutate: 1, NextClear: 2, PreviousMutate: 2, PreviousClear: 2}, false},
		"zero mutate":   {Timing{NextMutate: 0, NextClear: 2, PreviousMutate: 1, PreviousClear: 2}, false},
	}
	for name, tc := range testcases {
		err := tc.timing.Check()
		if tc.valid != (err == nil) {
			t.Fatalf("%s: expected valid=%v, got %v", name, tc.valid, err)
		}
	}
}
