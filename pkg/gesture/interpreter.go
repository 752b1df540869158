// Package gesture turns a single pointer interaction on one of the two
// pages into a navigation intent.
package gesture

import "math"

// DefaultMinSwipeDistance is the shortest horizontal travel, in distance
// units, that counts as a swipe rather than a tap or jitter.
const DefaultMinSwipeDistance = 50.0

type Surface int

const (
	Left Surface = iota
	Right
)

func (s Surface) String() string {
	return map[Surface]string{
		Left:  "left",
		Right: "right",
	}[s]
}

type Intent int

const (
	None Intent = iota
	Next
	Previous
)

func (i Intent) String() string {
	return map[Intent]string{
		None:     "none",
		Next:     "next",
		Previous: "previous",
	}[i]
}

// Classify maps the travel of one interaction to an intent. A leftward swipe
// on the right page turns forward and a rightward swipe on the left page
// turns back, the way a paper page would. Everything else is None.
func Classify(surface Surface, dx, dy, minSwipeDistance float64) Intent {
	if math.Abs(dx) <= math.Abs(dy) || math.Abs(dx) <= minSwipeDistance {
		return None
	}

	switch {
	case surface == Right && dx < 0:
		return Next
	case surface == Left && dx > 0:
		return Previous
	}
	return None
}

// Track is the record of the interaction in progress.
type Track struct {
	StartX, StartY float64
	Surface        Surface
	Active         bool
}

// Interpreter follows one interaction at a time. IsOpen reports whether the
// book is open; nothing is tracked while it is closed.
type Interpreter struct {
	MinSwipeDistance float64
	IsOpen           func() bool

	track Track
}

func NewInterpreter(minSwipeDistance float64, isOpen func() bool) *Interpreter {
	if minSwipeDistance <= 0 {
		minSwipeDistance = DefaultMinSwipeDistance
	}
	return &Interpreter{
		MinSwipeDistance: minSwipeDistance,
		IsOpen:           isOpen,
	}
}

// Down starts tracking an interaction that began on surface. It reports
// whether tracking started.
func (i *Interpreter) Down(surface Surface, x, y float64) bool {
	if !i.open() {
		i.track = Track{}
		return false
	}
	i.track = Track{StartX: x, StartY: y, Surface: surface, Active: true}
	return true
}

// Move reports whether the pointer is being tracked, in which case the
// caller should swallow the event instead of scrolling or selecting.
func (i *Interpreter) Move() bool {
	return i.track.Active
}

// Up ends the interaction and returns its intent. The intent is judged
// against the surface the interaction started on.
func (i *Interpreter) Up(x, y float64) Intent {
	t := i.track
	i.track = Track{}

	if !t.Active || !i.open() {
		return None
	}
	return Classify(t.Surface, x-t.StartX, y-t.StartY, i.MinSwipeDistance)
}

// Cancel drops the interaction in progress without producing an intent.
func (i *Interpreter) Cancel() {
	i.track = Track{}
}

// Track returns a copy of the current track.
func (i *Interpreter) Track() Track {
	return i.track
}

func (i *Interpreter) open() bool {
	return i.IsOpen != nil && i.IsOpen()
}
