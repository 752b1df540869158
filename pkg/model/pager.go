package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/byxorna/fable/pkg/book"
	"github.com/byxorna/fable/pkg/navigation"
	"github.com/byxorna/fable/pkg/text"
	"github.com/byxorna/fable/pkg/types/v1"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// renderKey identifies the scene text the viewport holds, so late glamour
// renders for a scene that is no longer shown are dropped.
type renderKey struct {
	generation uint64
	scene      int
	width      int
}

// pagerModel draws the book: the spine while closed and the two page spread
// while open.
type pagerModel struct {
	common   *commonModel
	viewport viewport.Model
	spinner  spinner.Model

	// spinning is true while spinner ticks are in flight
	spinning bool
	// flipping mirrors the controller so Update knows to start the spinner
	flipping bool

	// rendered is what the viewport holds, requested what glamour is
	// working on
	rendered  renderKey
	requested renderKey
}

func newPagerModel(common *commonModel) *pagerModel {
	vp := viewport.Model{}
	vp.YPosition = 0

	sp := spinner.NewModel()
	sp.Spinner = spinner.Dot
	sp.HideFor = time.Millisecond * 50
	sp.MinimumLifetime = time.Millisecond * 180

	return &pagerModel{
		common:   common,
		viewport: vp,
		spinner:  sp,
	}
}

// sceneChanged is subscribed to navigation.
func (p *pagerModel) sceneChanged(ch navigation.Change) {
	p.viewport.YOffset = 0
}

// flipChanged is subscribed to the page-turn controller.
func (p *pagerModel) flipChanged(fs book.FlipState) {
	p.flipping = fs.IsFlipping
}

func (p *pagerModel) setSize(l layout) {
	p.viewport.Width = max(0, l.leftPage.w-2*pagePadding)
	p.viewport.Height = l.leftPage.h
}

func (p pagerModel) currentKey(nav *navigation.State) renderKey {
	return renderKey{generation: nav.Generation(), scene: nav.SceneIndex(), width: p.viewport.Width}
}

// requestRender reports the scene that needs a glamour render, if any.
func (p *pagerModel) requestRender(nav *navigation.State) (renderKey, bool) {
	k := p.currentKey(nav)
	if nav.Story() == nil || k.width == 0 || k == p.rendered || k == p.requested {
		return k, false
	}
	p.requested = k
	return k, true
}

// setContent installs a glamour render unless the reader moved on.
func (p *pagerModel) setContent(nav *navigation.State, k renderKey, s string) bool {
	if k != p.currentKey(nav) {
		return false
	}
	p.rendered = k
	p.viewport.SetContent(s)
	return true
}

// bookView renders the book into exactly l.book.w x l.book.h cells.
func (p pagerModel) bookView(l layout, nav *navigation.State, fs book.FlipState) string {
	if !fs.BookOpen {
		return p.spineView(l.book, nav.Story())
	}

	left := p.leftPageView(l.leftPage, nav, fs)
	right := p.rightPageView(l.rightPage, nav, fs)
	gutter := fit(gutterStyle.Render(strings.Repeat("│\n", l.gutter.h)), l.gutter.w, l.gutter.h)

	spread := lipgloss.JoinHorizontal(lipgloss.Top, left, gutter, right)
	return lipgloss.JoinVertical(lipgloss.Left, spread, p.navBarView(l.navBar, nav, fs))
}

func (p pagerModel) spineView(r rect, story *v1.Story) string {
	if story == nil {
		return fit(emptySpineStyle.Copy().Width(r.w).Height(r.h).Render(
			verticalCenter(r.h, text.EmojiLibrary+"\n\nChoose a story")), r.w, r.h)
	}

	bg, fg := text.SpineColor(story.Title)
	style := spineStyle.Copy().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg)).
		Width(r.w).
		Height(r.h)

	title := wordwrap.String(story.Title, max(1, r.w-4))
	content := fmt.Sprintf("%s\n\n%s\n\n%d scenes\n\nspace to open", text.EmojiClosedBook, title, story.Len())
	return fit(style.Render(verticalCenter(r.h, content)), r.w, r.h)
}

func (p pagerModel) leftPageView(r rect, nav *navigation.State, fs book.FlipState) string {
	style := pageStyle
	if fs.IsFlipping && fs.FlipDirection == book.Forward {
		style = turningPageStyle
	}

	var content string
	switch {
	case nav.Story() == nil:
		content = verticalCenter(r.h, "Choose a story")
	case fs.IsFlipping && fs.FlipDirection == book.Forward:
		content = verticalCenter(r.h, p.spinner.View()+" turning")
	case p.rendered != p.currentKey(nav):
		// glamour has not caught up yet
		if sc, ok := nav.CurrentScene(); ok {
			content = wordwrap.String(sc.Text, max(1, r.w-2*pagePadding))
		}
	default:
		content = p.viewport.View()
	}
	return fit(style.Copy().Width(r.w).Height(r.h).Render(content), r.w, r.h)
}

func (p pagerModel) rightPageView(r rect, nav *navigation.State, fs book.FlipState) string {
	style := pageStyle
	if fs.IsFlipping && fs.FlipDirection == book.Backward {
		style = turningPageStyle
	}

	var content string
	sc, ok := nav.CurrentScene()
	switch {
	case !ok:
		content = verticalCenter(r.h, text.EmojiPicture)
	case fs.IsFlipping && fs.FlipDirection == book.Backward:
		content = verticalCenter(r.h, p.spinner.View()+" turning")
	default:
		inner := max(1, r.w-2*pagePadding-2)
		frame := imageFrameStyle.Copy().Width(inner).Render(
			text.EmojiPicture + "\n\n" + wordwrap.String(sc.ImageReference, max(1, inner-2)))
		content = verticalCenter(r.h, frame+"\n"+captionStyle.Render(sc.Caption()))
	}
	return fit(style.Copy().Width(r.w).Height(r.h).Render(content), r.w, r.h)
}

func (p pagerModel) navBarView(r rect, nav *navigation.State, fs book.FlipState) string {
	if r.w < 2*buttonWidth {
		return fit("", r.w, r.h)
	}

	prev := disabledButtonStyle.Render(prevButtonLabel)
	if nav.CanRetreat() && !fs.IsFlipping {
		prev = buttonStyle.Render(prevButtonLabel)
	}
	next := disabledButtonStyle.Render(nextButtonLabel)
	if nav.CanAdvance() && !fs.IsFlipping {
		next = buttonStyle.Render(nextButtonLabel)
	}

	indicator := "–"
	if story := nav.Story(); story != nil && story.Len() > 0 {
		indicator = fmt.Sprintf("%d / %d", nav.SceneIndex()+1, story.Len())
	}
	middle := navBarStyle.Copy().Width(r.w - 2*buttonWidth).Align(lipgloss.Center).Render(indicator)

	return fit(prev+middle+next, r.w, r.h)
}

// fit clips or pads s to exactly w columns by h lines.
func fit(s string, w, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	for i, line := range lines {
		line = truncate.String(line, uint(w))
		if pad := w - ansi.PrintableRuneWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func verticalCenter(h int, s string) string {
	n := strings.Count(s, "\n") + 1
	top := max(0, (h-n)/2)
	return strings.Repeat("\n", top) + s
}
