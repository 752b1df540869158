package model

import (
	"log"

	"github.com/byxorna/fable/pkg/book"
	"github.com/byxorna/fable/pkg/gesture"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	headerHeight    = 1
	statusBarHeight = 1
	navBarHeight    = 1

	// Percent of the window width taken by the book in each stage
	compactWidthPercent  = 40
	expandedWidthPercent = 85

	prevButtonLabel = " ← prev "
	nextButtonLabel = " next → "
	buttonWidth     = 8
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return r.w > 0 && r.h > 0 && x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type region int

const (
	regionNone region = iota
	regionLibrary
	regionSpine
	regionLeftPage
	regionGutter
	regionRightPage
	regionPrevButton
	regionNextButton
)

func (r region) String() string {
	return map[region]string{
		regionNone:       "none",
		regionLibrary:    "library",
		regionSpine:      "spine",
		regionLeftPage:   "left page",
		regionGutter:     "gutter",
		regionRightPage:  "right page",
		regionPrevButton: "previous button",
		regionNextButton: "next button",
	}[r]
}

// layout is where everything is drawn, in cells. View and the mouse
// handling both derive from it so a click always lands where it was drawn.
type layout struct {
	width, height int

	library rect
	book    rect

	// only set while the book is open
	leftPage, gutter, rightPage rect
	prevButton, nextButton      rect
	navBar                      rect
}

func computeLayout(width, height, helpHeight int, stage book.Stage, open bool) layout {
	l := layout{width: width, height: height}

	bodyTop := headerHeight
	bodyHeight := max(0, height-headerHeight-statusBarHeight-helpHeight)

	percent := compactWidthPercent
	if stage == book.Expanded {
		percent = expandedWidthPercent
	}
	bookWidth := width * percent / 100

	if open {
		l.book = rect{x: (width - bookWidth) / 2, y: bodyTop, w: bookWidth, h: bodyHeight}
	} else {
		l.library = rect{x: 0, y: bodyTop, w: width - bookWidth, h: bodyHeight}
		l.book = rect{x: width - bookWidth, y: bodyTop, w: bookWidth, h: bodyHeight}
		return l
	}

	pageHeight := max(0, l.book.h-navBarHeight)
	leftWidth := max(0, (l.book.w-1)/2)
	rightWidth := max(0, l.book.w-leftWidth-1)

	l.leftPage = rect{x: l.book.x, y: bodyTop, w: leftWidth, h: pageHeight}
	l.gutter = rect{x: l.book.x + leftWidth, y: bodyTop, w: 1, h: pageHeight}
	l.rightPage = rect{x: l.gutter.x + 1, y: bodyTop, w: rightWidth, h: pageHeight}

	l.navBar = rect{x: l.book.x, y: bodyTop + pageHeight, w: l.book.w, h: min(navBarHeight, l.book.h)}
	if l.navBar.w >= 2*buttonWidth {
		l.prevButton = rect{x: l.navBar.x, y: l.navBar.y, w: buttonWidth, h: l.navBar.h}
		l.nextButton = rect{x: l.navBar.x + l.navBar.w - buttonWidth, y: l.navBar.y, w: buttonWidth, h: l.navBar.h}
	}
	return l
}

func (l layout) hitTest(x, y int) region {
	switch {
	case l.prevButton.contains(x, y):
		return regionPrevButton
	case l.nextButton.contains(x, y):
		return regionNextButton
	case l.leftPage.contains(x, y):
		return regionLeftPage
	case l.rightPage.contains(x, y):
		return regionRightPage
	case l.gutter.contains(x, y):
		return regionGutter
	case l.library.contains(x, y):
		return regionLibrary
	case l.leftPage.w == 0 && l.book.contains(x, y):
		return regionSpine
	}
	return regionNone
}

func surfaceOf(r region) (gesture.Surface, bool) {
	switch r {
	case regionLeftPage:
		return gesture.Left, true
	case regionRightPage:
		return gesture.Right, true
	}
	return gesture.Left, false
}

// units converts a cell position into gesture distance units.
func (m Model) units(x, y int) (float64, float64) {
	return float64(x) * m.Config.CellWidth, float64(y) * m.Config.CellHeight
}

// handleMouse routes a mouse event to the book, the gesture interpreter or
// the library. It reports whether the event was consumed.
func (m *Model) handleMouse(msg tea.MouseMsg) bool {
	l := m.layout()
	hit := l.hitTest(msg.X, msg.Y)
	ux, uy := m.units(msg.X, msg.Y)

	switch msg.Type {
	case tea.MouseLeft:
		// some terminals report a drag as repeated presses
		if m.gestures.Track().Active {
			return m.gestures.Move()
		}

		switch hit {
		case regionSpine, regionGutter:
			if m.book.ToggleOpen() && m.book.IsOpen() {
				m.focus = focusBook
			}
			return true
		case regionPrevButton:
			m.book.RequestPrevious()
			return true
		case regionNextButton:
			m.book.RequestNext()
			return true
		case regionLibrary:
			m.focus = focusLibrary
			return false
		}
		if surface, ok := surfaceOf(hit); ok {
			return m.gestures.Down(surface, ux, uy)
		}

	case tea.MouseMotion:
		return m.gestures.Move()

	case tea.MouseRelease:
		if !m.gestures.Track().Active {
			return false
		}
		if _, ok := surfaceOf(hit); !ok {
			// released off the pages
			m.gestures.Cancel()
			return true
		}
		intent := m.gestures.Up(ux, uy)
		if intent != gesture.None {
			accepted := m.book.Dispatch(intent)
			log.Printf("swipe %s accepted=%v", intent, accepted)
		}
		return true
	}
	return false
}
