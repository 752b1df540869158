package model

import (
	"fmt"

	"github.com/byxorna/fable/pkg/text"
	"github.com/byxorna/fable/pkg/types/v1"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// storyItem is a story as listed in the library.
type storyItem struct {
	story *v1.Story

	// Value we filter against, without diacritics
	filterValue string
}

func newStoryItem(s *v1.Story) storyItem {
	fv, err := text.Normalize(s.Title)
	if err != nil {
		fv = s.Title
	}
	return storyItem{story: s, filterValue: fv}
}

func (i storyItem) FilterValue() string { return i.filterValue }

func (i storyItem) Title() string {
	return text.EmojiClosedBook + " " + i.story.Title
}

func (i storyItem) Description() string {
	scenes := "scenes"
	if i.story.Len() == 1 {
		scenes = "scene"
	}
	return fmt.Sprintf("%d %s · %s", i.story.Len(), scenes, text.FileSummary(i.story.Size, i.story.Modified))
}

func itemsFromStories(stories []*v1.Story) []list.Item {
	lx := make([]list.Item, len(stories))
	for i := range stories {
		lx[i] = newStoryItem(stories[i])
	}
	return lx
}

func newLibrary(stories []*v1.Story, keys keyMap, width, height int) list.Model {
	l := list.NewModel(itemsFromStories(stories), newStoryDelegate(keys), width, height)
	l.Title = text.EmojiLibrary + " Library"
	l.Styles.Title = libraryTitleStyle
	l.SetShowHelp(false)
	return l
}

// newStoryDelegate turns enter on a highlighted story into storyChosenMsg.
func newStoryDelegate(keys keyMap) list.DefaultDelegate {
	d := list.NewDefaultDelegate()

	d.UpdateFunc = func(msg tea.Msg, m *list.Model) tea.Cmd {
		item, ok := m.SelectedItem().(storyItem)
		if !ok {
			return nil
		}

		switch msg := msg.(type) {
		case tea.KeyMsg:
			if key.Matches(msg, keys.Choose) {
				return func() tea.Msg { return storyChosenMsg{story: item.story} }
			}
		}
		return nil
	}

	help := []key.Binding{keys.Choose}

	d.ShortHelpFunc = func() []key.Binding {
		return help
	}

	d.FullHelpFunc = func() [][]key.Binding {
		return [][]key.Binding{help}
	}

	return d
}

var libraryTitleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FFFDF5")).
	Background(lipgloss.Color("#5A56E0")).
	Padding(0, 1)
