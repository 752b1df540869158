package book

import (
	"testing"
	"time"

	"github.com/byxorna/fable/pkg/gesture"
	"github.com/byxorna/fable/pkg/navigation"
	"github.com/byxorna/fable/pkg/types/v1"
	"github.com/kylelemons/godebug/pretty"
)

func story(title string, n int) *v1.Story {
	s := &v1.Story{Title: title}
	for i := 0; i < n; i++ {
		s.Scenes = append(s.Scenes, v1.Scene{Index: i})
	}
	return s
}

func newOpenBook(t *testing.T, scenes int) (*Controller, *navigation.State, *ManualScheduler) {
	t.Helper()
	nav := navigation.New()
	sched := NewManualScheduler()
	c := New(nav, sched, DefaultTiming)
	nav.SelectStory(story("test", scenes))
	if !c.ToggleOpen() {
		t.Fatal("expected the book to open")
	}
	return c, nav, sched
}

func TestInitialState(t *testing.T) {
	c := New(navigation.New(), NewManualScheduler(), DefaultTiming)
	if c.State() != Closed {
		t.Fatalf("expected closed, got %s", c.State())
	}
	if c.Stage() != Compact {
		t.Fatal("expected compact stage")
	}
	if c.RequestNext() || c.RequestPrevious() {
		t.Fatal("a closed book cannot turn")
	}
}

func TestToggleOpen(t *testing.T) {
	nav := navigation.New()
	c := New(nav, NewManualScheduler(), DefaultTiming)
	nav.SelectStory(story("a", 3))

	if !c.ToggleOpen() || c.State() != OpenIdle || c.Stage() != Expanded {
		t.Fatalf("expected open and expanded, got %s", c.State())
	}
	if !c.ToggleOpen() || c.State() != Closed || c.Stage() != Compact {
		t.Fatalf("expected closed and compact, got %s", c.State())
	}
}

func TestThreeSceneScenario(t *testing.T) {
	c, nav, sched := newOpenBook(t, 3)

	if nav.SceneIndex() != 0 || nav.CanRetreat() || !nav.CanAdvance() {
		t.Fatal("unexpected starting position")
	}

	if !c.RequestNext() {
		t.Fatal("expected the first turn to be accepted")
	}
	if fs := c.FlipState(); !fs.IsFlipping || fs.FlipDirection != Backward {
		t.Fatalf("expected a backward turn in flight, got %+v", fs)
	}

	sched.Advance(DefaultTiming.NextMutate - time.Millisecond)
	if nav.SceneIndex() != 0 {
		t.Fatal("scene changed before the mutate delay")
	}

	sched.Advance(time.Millisecond)
	if nav.SceneIndex() != 1 {
		t.Fatalf("expected scene 1 after the mutate delay, got %d", nav.SceneIndex())
	}

	// still inside the clear delay
	if c.RequestNext() {
		t.Fatal("a second turn must be refused while the first is in flight")
	}
	if nav.SceneIndex() != 1 {
		t.Fatalf("expected scene to remain 1, got %d", nav.SceneIndex())
	}

	sched.Advance(DefaultTiming.NextClear - DefaultTiming.NextMutate)
	if c.State() != OpenIdle {
		t.Fatalf("expected the turn to be over, got %s", c.State())
	}

	if !c.RequestNext() {
		t.Fatal("expected the next turn to be accepted once idle")
	}
	sched.Advance(DefaultTiming.NextClear)
	if nav.SceneIndex() != 2 {
		t.Fatalf("expected scene 2, got %d", nav.SceneIndex())
	}
	if c.RequestNext() {
		t.Fatal("expected a refusal at the last scene")
	}
}

func TestRequestsWhileFlippingHaveNoEffect(t *testing.T) {
	c, nav, sched := newOpenBook(t, 5)
	c.RequestNext()
	sched.Advance(DefaultTiming.NextClear)
	c.RequestNext()

	before := c.FlipState()
	index := nav.SceneIndex()
	if c.RequestPrevious() || c.RequestNext() || c.Dispatch(gesture.Previous) {
		t.Fatal("requests during a turn must be refused")
	}
	if diff := pretty.Compare(before, c.FlipState()); diff != "" {
		t.Fatalf("flip state changed:\n%s", diff)
	}
	if nav.SceneIndex() != index {
		t.Fatal("scene index changed")
	}
	if sched.Pending() != 2 {
		t.Fatalf("expected exactly one turn's timers pending, got %d", sched.Pending())
	}
}

func TestRequestPreviousTiming(t *testing.T) {
	c, nav, sched := newOpenBook(t, 3)
	c.RequestNext()
	sched.Advance(DefaultTiming.NextClear)

	if !c.RequestPrevious() {
		t.Fatal("expected the turn back to be accepted")
	}
	if fs := c.FlipState(); fs.FlipDirection != Forward {
		t.Fatalf("expected a forward turn, got %s", fs.FlipDirection)
	}

	sched.Advance(DefaultTiming.PreviousMutate)
	if nav.SceneIndex() != 0 {
		t.Fatalf("expected scene 0 after %s, got %d", DefaultTiming.PreviousMutate, nav.SceneIndex())
	}
	if !c.FlipState().IsFlipping {
		t.Fatal("expected the turn to still be in flight")
	}
	sched.Advance(DefaultTiming.PreviousClear - DefaultTiming.PreviousMutate)
	if c.FlipState().IsFlipping {
		t.Fatal("expected the turn to be over")
	}
}

func TestBoundaryRequestsAreRefused(t *testing.T) {
	c, _, sched := newOpenBook(t, 1)
	if c.RequestNext() || c.RequestPrevious() {
		t.Fatal("a single scene story cannot turn")
	}
	if sched.Pending() != 0 {
		t.Fatal("refused requests must not schedule anything")
	}

	empty, _, _ := newOpenBook(t, 0)
	if empty.RequestNext() || empty.RequestPrevious() {
		t.Fatal("a story without scenes cannot turn")
	}
}

func TestCollapseRefusedWhileFlipping(t *testing.T) {
	c, _, sched := newOpenBook(t, 3)
	c.RequestNext()
	if c.ToggleOpen() {
		t.Fatal("closing mid-turn must be refused")
	}
	if c.State() != OpenFlipping {
		t.Fatalf("expected flipping, got %s", c.State())
	}
	sched.Advance(DefaultTiming.NextClear)
	if !c.ToggleOpen() || c.State() != Closed {
		t.Fatal("expected the book to close once idle")
	}
}

func TestSelectingAStoryClosesTheBook(t *testing.T) {
	c, nav, sched := newOpenBook(t, 3)
	c.RequestNext()
	sched.Advance(DefaultTiming.NextClear)
	c.RequestNext()
	sched.Advance(DefaultTiming.NextClear)
	if nav.SceneIndex() != 2 {
		t.Fatalf("expected scene 2, got %d", nav.SceneIndex())
	}

	nav.SelectStory(story("other", 4))
	if nav.SceneIndex() != 0 {
		t.Fatalf("expected scene 0, got %d", nav.SceneIndex())
	}
	if c.FlipState().BookOpen || c.Stage() != Compact {
		t.Fatal("expected the book to close on a new story")
	}
}

func TestStoryChangeMidFlip(t *testing.T) {
	c, nav, sched := newOpenBook(t, 3)
	c.RequestNext()

	other := story("other", 3)
	nav.SelectStory(other)
	if !c.FlipState().IsFlipping {
		t.Fatal("the turn in flight is not cancelled by default")
	}

	sched.Advance(DefaultTiming.NextClear)
	if c.FlipState().IsFlipping {
		t.Fatal("the turn must still clear on its timer")
	}
	if nav.Story() != other || nav.SceneIndex() != 0 {
		t.Fatalf("the stale turn advanced the new story to %d", nav.SceneIndex())
	}
}

func TestStoryChangeMidFlipWithCancel(t *testing.T) {
	c, nav, sched := newOpenBook(t, 3)
	c.CancelFlipOnCollapse = true
	c.RequestNext()

	nav.SelectStory(story("other", 3))
	if c.FlipState().IsFlipping {
		t.Fatal("expected the turn to be cancelled")
	}
	if sched.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", sched.Pending())
	}
}

func TestCancel(t *testing.T) {
	c, nav, sched := newOpenBook(t, 3)
	c.RequestNext()
	c.Cancel()

	sched.Advance(time.Second)
	if nav.SceneIndex() != 0 {
		t.Fatal("a cancelled turn must not change the scene")
	}
	if c.State() != OpenIdle {
		t.Fatalf("expected open and idle, got %s", c.State())
	}
}

func TestClose(t *testing.T) {
	c, nav, sched := newOpenBook(t, 3)
	c.RequestNext()
	c.Close()
	sched.Advance(time.Second)
	if nav.SceneIndex() != 0 {
		t.Fatal("closed controller must not change the scene")
	}

	nav.SelectStory(story("other", 2))
	if !c.FlipState().BookOpen {
		t.Fatal("closed controller must not observe navigation anymore")
	}
}

func TestDispatch(t *testing.T) {
	c, nav, sched := newOpenBook(t, 3)
	if c.Dispatch(gesture.None) {
		t.Fatal("none is not a request")
	}
	if !c.Dispatch(gesture.Next) {
		t.Fatal("expected next to be accepted")
	}
	sched.Advance(DefaultTiming.NextClear)
	if !c.Dispatch(gesture.Previous) {
		t.Fatal("expected previous to be accepted")
	}
	sched.Advance(DefaultTiming.PreviousClear)
	if nav.SceneIndex() != 0 {
		t.Fatalf("expected to be back at scene 0, got %d", nav.SceneIndex())
	}
}

func TestSubscribe(t *testing.T) {
	c, _, sched := newOpenBook(t, 2)

	var got []FlipState
	c.Subscribe(func(fs FlipState) { got = append(got, fs) })

	c.RequestNext()
	sched.Advance(DefaultTiming.NextClear)

	want := []FlipState{
		{BookOpen: true, IsFlipping: true, FlipDirection: Backward},
		{BookOpen: true, IsFlipping: false, FlipDirection: Backward},
	}
	if diff := pretty.Compare(want, got); diff != "" {
		t.Fatalf("unexpected notifications (-want +got):\n%s", diff)
	}
}

func TestMutateFiresBeforeClear(t *testing.T) {
	for name, timing := range map[string]Timing{
		"default": DefaultTiming,
		"tight":   {NextMutate: 1, NextClear: 2, PreviousMutate: 1, PreviousClear: 2},
	} {
		t.Run(name, func(t *testing.T) {
			if err := timing.Check(); err != nil {
				t.Fatal(err)
			}

			nav := navigation.New()
			sched := NewManualScheduler()
			c := New(nav, sched, timing)
			nav.SelectStory(story("order", 3))
			c.ToggleOpen()

			var order []string
			nav.Subscribe(func(navigation.Change) { order = append(order, "scene") })
			c.Subscribe(func(fs FlipState) {
				if !fs.IsFlipping {
					order = append(order, "clear")
				}
			})

			c.RequestNext()
			sched.Advance(time.Second)
			if diff := pretty.Compare([]string{"scene", "clear"}, order); diff != "" {
				t.Fatalf("unexpected order:\n%s", diff)
			}
		})
	}
}
