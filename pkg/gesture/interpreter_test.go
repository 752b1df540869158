package gesture

import "testing"

func open() bool   { return true }
func closed() bool { return false }

func swipe(i *Interpreter, s Surface, dx, dy float64) Intent {
	const x, y = 400, 300
	i.Down(s, x, y)
	i.Move()
	return i.Up(x+dx, y+dy)
}

func TestSwipes(t *testing.T) {
	testcases := []struct {
		name     string
		surface  Surface
		dx, dy   float64
		isOpen   func() bool
		expected Intent
	}{
		{"leftward on right page", Right, -60, 5, open, Next},
		{"rightward on left page", Left, 60, 0, open, Previous},
		{"rightward on right page", Right, 60, 0, open, None},
		{"leftward on left page", Left, -60, 0, open, None},
		{"vertical on left page", Left, 10, 40, open, None},
		{"vertical on right page", Right, 10, 40, open, None},
		{"short tap", Right, -20, 0, open, None},
		{"exactly the minimum", Right, -50, 0, open, None},
		{"diagonal tie", Right, -80, 80, open, None},
		{"closed book right", Right, -60, 5, closed, None},
		{"closed book left", Left, 60, 0, closed, None},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			i := NewInterpreter(DefaultMinSwipeDistance, tc.isOpen)
			if actual := swipe(i, tc.surface, tc.dx, tc.dy); actual != tc.expected {
				t.Fatalf("expected %s, got %s", tc.expected, actual)
			}
			if i.Track().Active {
				t.Fatal("track must be reset after the interaction ends")
			}
		})
	}
}

func TestDownIgnoredWhileClosed(t *testing.T) {
	i := NewInterpreter(0, closed)
	if i.Down(Right, 1, 1) {
		t.Fatal("expected no tracking while the book is closed")
	}
	if i.Move() {
		t.Fatal("move must not be suppressed without an active track")
	}
}

func TestUpWithoutDown(t *testing.T) {
	i := NewInterpreter(0, open)
	if actual := i.Up(0, 0); actual != None {
		t.Fatalf("expected none, got %s", actual)
	}
}

func TestCancel(t *testing.T) {
	i := NewInterpreter(0, open)
	i.Down(Right, 400, 300)
	if !i.Move() {
		t.Fatal("expected move to be swallowed while tracking")
	}
	i.Cancel()
	if actual := i.Up(300, 300); actual != None {
		t.Fatalf("cancelled interaction produced %s", actual)
	}
}

func TestSurfaceIsWhereTheInteractionBegan(t *testing.T) {
	i := NewInterpreter(0, open)
	i.Down(Right, 400, 300)
	// the pointer may cross onto the other page before release
	if actual := i.Up(250, 300); actual != Next {
		t.Fatalf("expected next, got %s", actual)
	}
}

func TestBookClosedMidInteraction(t *testing.T) {
	isOpen := true
	i := NewInterpreter(0, func() bool { return isOpen })
	i.Down(Right, 400, 300)
	isOpen = false
	if actual := i.Up(300, 300); actual != None {
		t.Fatalf("expected none after the book closed, got %s", actual)
	}
}

func TestDefaultMinSwipeDistance(t *testing.T) {
	i := NewInterpreter(-1, open)
	if i.MinSwipeDistance != DefaultMinSwipeDistance {
		t.Fatalf("expected default %v, got %v", DefaultMinSwipeDistance, i.MinSwipeDistance)
	}
}

func TestClassifyCustomDistance(t *testing.T) {
	if actual := Classify(Right, -20, 0, 10); actual != Next {
		t.Fatalf("expected next with a 10 unit threshold, got %s", actual)
	}
}
