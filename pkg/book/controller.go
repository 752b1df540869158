// Package book is the page-turn state machine. It decides whether the book
// is open, whether a page is turning and in which direction, and it
// sequences the scene change against the turn so the two never disagree.
package book

import (
	"log"
	"time"

	"github.com/byxorna/fable/pkg/gesture"
	"github.com/byxorna/fable/pkg/navigation"
)

// Direction is the way the turning page travels, not the way the reader
// moves: going to the next scene turns the right page backward.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	return map[Direction]string{
		Forward:  "forward",
		Backward: "backward",
	}[d]
}

type State int

const (
	Closed State = iota
	OpenIdle
	OpenFlipping
)

func (s State) String() string {
	return map[State]string{
		Closed:       "closed",
		OpenIdle:     "open",
		OpenFlipping: "flipping",
	}[s]
}

// Stage is the width the book occupies: compact while closed, expanded
// once opened.
type Stage int

const (
	Compact Stage = iota
	Expanded
)

// FlipState is everything the presentation needs to draw the turn.
type FlipState struct {
	BookOpen      bool
	IsFlipping    bool
	FlipDirection Direction
}

type Controller struct {
	// CancelFlipOnCollapse stops a turn in flight when a story change closes
	// the book. By default the turn is left to finish on its own timers.
	CancelFlipOnCollapse bool

	nav       *navigation.State
	scheduler Scheduler
	timing    Timing

	open      bool
	flipping  bool
	direction Direction
	stage     Stage
	pending   []Timer

	listeners   []func(FlipState)
	unsubscribe func()
}

func New(nav *navigation.State, scheduler Scheduler, timing Timing) *Controller {
	c := &Controller{
		nav:       nav,
		scheduler: scheduler,
		timing:    timing,
	}
	c.unsubscribe = nav.Subscribe(c.navigationChanged)
	return c
}

func (c *Controller) navigationChanged(ch navigation.Change) {
	if !ch.StoryChanged {
		return
	}
	c.open = false
	c.stage = Compact
	if c.CancelFlipOnCollapse && c.flipping {
		c.Cancel()
		return
	}
	c.notify()
}

// ToggleOpen opens a closed book or closes an open one. Closing is refused
// while a page is turning.
func (c *Controller) ToggleOpen() bool {
	if !c.open {
		c.open = true
		c.stage = Expanded
		c.notify()
		return true
	}
	if c.flipping {
		return false
	}
	c.open = false
	c.stage = Compact
	c.notify()
	return true
}

// RequestNext turns to the next scene. It is refused while the book is
// closed, while another turn is in flight, or at the last scene.
func (c *Controller) RequestNext() bool {
	if !c.open || c.flipping || !c.nav.CanAdvance() {
		return false
	}
	c.startFlip(Backward, c.timing.NextMutate, c.timing.NextClear, c.nav.Advance)
	return true
}

// RequestPrevious turns to the previous scene under the same rules as
// RequestNext.
func (c *Controller) RequestPrevious() bool {
	if !c.open || c.flipping || !c.nav.CanRetreat() {
		return false
	}
	c.startFlip(Forward, c.timing.PreviousMutate, c.timing.PreviousClear, c.nav.Retreat)
	return true
}

// Dispatch routes a gesture intent to the matching request.
func (c *Controller) Dispatch(intent gesture.Intent) bool {
	switch intent {
	case gesture.Next:
		return c.RequestNext()
	case gesture.Previous:
		return c.RequestPrevious()
	}
	return false
}

func (c *Controller) startFlip(d Direction, mutateAfter, clearAfter time.Duration, mutate func() bool) {
	c.direction = d
	c.flipping = true
	generation := c.nav.Generation()

	mutateTimer := c.scheduler.Schedule(mutateAfter, func() {
		// a story picked mid-turn must not be advanced by the old turn
		if c.nav.Generation() != generation {
			log.Printf("dropping stale %s turn for generation %d", d, generation)
			return
		}
		mutate()
	})
	clearTimer := c.scheduler.Schedule(clearAfter, c.clearFlip)
	c.pending = []Timer{mutateTimer, clearTimer}

	log.Printf("turning %s from scene %d", d, c.nav.SceneIndex())
	c.notify()
}

func (c *Controller) clearFlip() {
	c.pending = nil
	if !c.flipping {
		return
	}
	c.flipping = false
	c.notify()
}

// Cancel stops the turn in flight, if any, including its scene change.
func (c *Controller) Cancel() {
	for _, t := range c.pending {
		t.Stop()
	}
	c.pending = nil
	if c.flipping {
		c.flipping = false
		c.notify()
	}
}

// Close detaches the controller from navigation and cancels pending work.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.Cancel()
}

func (c *Controller) State() State {
	switch {
	case !c.open:
		return Closed
	case c.flipping:
		return OpenFlipping
	default:
		return OpenIdle
	}
}

func (c *Controller) FlipState() FlipState {
	return FlipState{
		BookOpen:      c.open,
		IsFlipping:    c.flipping,
		FlipDirection: c.direction,
	}
}

func (c *Controller) IsOpen() bool                  { return c.open }
func (c *Controller) Stage() Stage                  { return c.stage }
func (c *Controller) Timing() Timing                { return c.timing }
func (c *Controller) CanAdvance() bool              { return c.nav.CanAdvance() }
func (c *Controller) CanRetreat() bool              { return c.nav.CanRetreat() }
func (c *Controller) Navigation() *navigation.State { return c.nav }

// Subscribe registers fn for every change of the flip flags.
func (c *Controller) Subscribe(fn func(FlipState)) func() {
	c.listeners = append(c.listeners, fn)
	idx := len(c.listeners) - 1
	return func() {
		c.listeners[idx] = nil
	}
}

func (c *Controller) notify() {
	fs := c.FlipState()
	for _, fn := range c.listeners {
		if fn != nil {
			fn(fs)
		}
	}
}
