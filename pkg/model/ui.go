package model

import (
	"fmt"
	"log"
	"strings"

	"github.com/byxorna/fable/pkg/book"
	"github.com/byxorna/fable/pkg/text"
	"github.com/byxorna/fable/pkg/ui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// If there's been an error, any key exits
	if m.fatalErr != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m.quit()
		}
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			if m.quitting {
				return m, cmd
			}
			cmds = append(cmds, cmd)
			return m, m.afterUpdate(cmds)
		}

	case tea.MouseMsg:
		if !m.Config.Mouse {
			return m, nil
		}
		if m.handleMouse(msg) {
			return m, m.afterUpdate(cmds)
		}

	// Window size is received when starting up and on every resize
	case tea.WindowSizeMsg:
		m.common.width = msg.Width
		m.common.height = msg.Height
		m.resize()
		return m, m.afterUpdate(cmds)

	case timerFiredMsg:
		m.scheduler.Fire(msg.id)
		return m, m.afterUpdate(cmds)

	case spinner.TickMsg:
		if !m.pager.flipping {
			m.pager.spinning = false
			return m, m.afterUpdate(cmds)
		}
		var cmd tea.Cmd
		m.pager.spinner, cmd = m.pager.spinner.Update(msg)
		return m, m.afterUpdate(append(cmds, cmd))

	case sceneRenderedMsg:
		m.pager.setContent(m.nav, msg.key, msg.content)
		return m, m.afterUpdate(cmds)

	case storiesLoadedMsg:
		closed := m.closedLayout()
		m.library = newLibrary(msg, m.keys, closed.library.w, closed.library.h)
		cmds = append(cmds, m.showStatusMessage(fmt.Sprintf("%d stories in %s", len(msg), m.repo.StoragePath()), false))
		return m, m.afterUpdate(cmds)

	case storyChosenMsg:
		m.nav.SelectStory(msg.story)
		m.focus = focusBook
		cmds = append(cmds, m.showStatusMessage(msg.story.Title, false))
		return m, m.afterUpdate(cmds)

	case watchStartedMsg:
		return m, waitForChangesCmd(msg.changes)

	case storiesChangedMsg:
		log.Println("story directory changed, reloading")
		cmds = append(cmds, loadStoriesCmd(m.ctx, m.repo), waitForChangesCmd(msg.changes))
		return m, m.afterUpdate(cmds)

	case statusMessageTimeoutMsg:
		if msg.seq == m.statusSequence {
			m.statusMessage = ""
			m.statusIsError = false
		}
		return m, nil

	case errMsg:
		log.Printf("error: %v", msg)
		cmds = append(cmds, m.showStatusMessage(text.EmojiWarning+" "+msg.Error(), true))
		return m, m.afterUpdate(cmds)
	}

	// Process children
	var cmd tea.Cmd
	switch {
	case m.book.IsOpen():
		m.pager.viewport, cmd = m.pager.viewport.Update(msg)
	case m.focus == focusLibrary:
		m.library, cmd = m.library.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, m.afterUpdate(cmds)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	// pass through all keys while the library filter is being edited
	if m.focus == focusLibrary && !m.book.IsOpen() && m.library.FilterState() == list.Filtering {
		if msg.String() == "ctrl+c" {
			return m.quitCmd(), true
		}
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quitCmd(), true

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.resize()
		return nil, true

	case key.Matches(msg, m.keys.ToggleOpen):
		if m.book.ToggleOpen() && m.book.IsOpen() {
			m.focus = focusBook
		}
		return nil, true

	case key.Matches(msg, m.keys.Next) && m.book.IsOpen():
		m.book.RequestNext()
		return nil, true

	case key.Matches(msg, m.keys.Previous) && m.book.IsOpen():
		m.book.RequestPrevious()
		return nil, true

	case key.Matches(msg, m.keys.CancelDrag) && m.gestures.Track().Active:
		m.gestures.Cancel()
		return nil, true

	case key.Matches(msg, m.keys.Focus) && !m.book.IsOpen():
		if m.focus == focusLibrary {
			m.focus = focusBook
		} else {
			m.focus = focusLibrary
		}
		return nil, true

	case key.Matches(msg, m.keys.Reload):
		return loadStoriesCmd(m.ctx, m.repo), true
	}
	return nil, false
}

func (m *Model) quitCmd() tea.Cmd {
	m.quitting = true
	m.Close()
	return tea.Quit
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	return m, m.quitCmd()
}

// afterUpdate collects the work every state change may have produced:
// timers the controller scheduled, the spinner for a turn that just started
// and a glamour render for a scene that just came up.
func (m *Model) afterUpdate(cmds []tea.Cmd) tea.Cmd {
	cmds = append(cmds, m.scheduler.Flush())

	if m.pager.flipping && !m.pager.spinning {
		m.pager.spinning = true
		cmds = append(cmds, spinner.Tick)
	}

	if k, ok := m.pager.requestRender(m.nav); ok {
		if sc, ok := m.nav.CurrentScene(); ok {
			cmds = append(cmds, renderSceneCmd(k, sc.Text, m.Config.GlamourStyle))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) showStatusMessage(s string, isError bool) tea.Cmd {
	m.statusSequence++
	m.statusMessage = s
	m.statusIsError = isError
	return waitForStatusMessageTimeout(m.statusSequence)
}

func (m Model) helpView() string {
	if !m.showHelp {
		return ""
	}
	s := m.help.View(m.keys)

	// Fill up empty cells with spaces for background coloring
	if m.common.width > 0 {
		lines := strings.Split(s, "\n")
		for i := 0; i < len(lines); i++ {
			l := runewidth.StringWidth(lines[i])
			n := max(m.common.width-l, 0)
			lines[i] += strings.Repeat(" ", n)
		}
		s = strings.Join(lines, "\n")
	}
	return ui.HelpViewStyle(s)
}

func (m Model) helpHeight() int {
	if !m.showHelp {
		return 0
	}
	return strings.Count(m.helpView(), "\n") + 1
}

func (m Model) layout() layout {
	return computeLayout(m.common.width, m.common.height, m.helpHeight(), m.book.Stage(), m.book.IsOpen())
}

func (m Model) closedLayout() layout {
	return computeLayout(m.common.width, m.common.height, m.helpHeight(), book.Compact, false)
}

func (m Model) openLayout() layout {
	return computeLayout(m.common.width, m.common.height, m.helpHeight(), book.Expanded, true)
}

// resize sizes the children for both stages; the library only shows while
// the book is closed and the pages only while it is open.
func (m *Model) resize() {
	m.help.Width = m.common.width

	closed := m.closedLayout()
	m.library.SetSize(closed.library.w, closed.library.h)
	m.pager.setSize(m.openLayout())
}

func (m Model) View() string {
	if m.fatalErr != nil {
		return errorView(m.fatalErr, true)
	}
	if m.quitting {
		return ""
	}
	if m.common.width == 0 || m.common.height == 0 {
		return ""
	}

	l := m.layout()
	fs := m.book.FlipState()
	bookView := m.pager.bookView(l, m.nav, fs)

	var body string
	if fs.BookOpen {
		margin := fit("", l.book.x, l.book.h)
		body = lipgloss.JoinHorizontal(lipgloss.Top, margin, bookView)
	} else {
		libraryView := fit(m.library.View(), l.library.w, l.library.h)
		body = lipgloss.JoinHorizontal(lipgloss.Top, libraryView, bookView)
	}

	var b strings.Builder
	fmt.Fprintln(&b, m.headerView())
	if l.book.h > 0 {
		fmt.Fprintln(&b, body)
	}
	m.statusBarView(&b)
	if m.showHelp {
		fmt.Fprint(&b, "\n"+m.helpView())
	}
	return b.String()
}

func (m Model) headerView() string {
	title := "Choose a story"
	if s := m.nav.Story(); s != nil {
		icon := text.EmojiClosedBook
		if m.book.IsOpen() {
			icon = text.EmojiOpenBook
		}
		title = icon + " " + s.Title
	}
	return truncate.StringWithTail(logoView(title), uint(max(0, m.common.width)), text.Ellipsis)
}

func (m Model) statusBarView(b *strings.Builder) {
	style := ui.StatusBarNoteStyle
	note := fmt.Sprintf("focus: %s", m.focus)
	switch {
	case m.statusIsError:
		style = ui.StatusBarErrorStyle
		note = m.statusMessage
	case m.statusMessage != "":
		style = ui.StatusBarMessageStyle
		note = m.statusMessage
	}

	var indicator string
	if m.pager.flipping {
		indicator = " " + m.pager.spinner.View()
	}

	helpNote := ui.StatusBarHelpStyle(" ? Help ")
	note = truncate.StringWithTail(" "+note+" ", uint(max(0,
		m.common.width-
			ansi.PrintableRuneWidth(indicator)-
			ansi.PrintableRuneWidth(helpNote),
	)), text.Ellipsis)

	padding := max(0,
		m.common.width-
			ansi.PrintableRuneWidth(indicator)-
			ansi.PrintableRuneWidth(note)-
			ansi.PrintableRuneWidth(helpNote),
	)

	fmt.Fprintf(b, "%s%s%s%s",
		style(indicator),
		style(note),
		style(strings.Repeat(" ", padding)),
		helpNote,
	)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
