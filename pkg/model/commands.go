package model

import (
	"context"
	"errors"
	"time"

	"github.com/byxorna/fable/pkg/db"
	"github.com/byxorna/fable/pkg/types/v1"
	tea "github.com/charmbracelet/bubbletea"
)

const statusMessageTimeout = time.Second * 3

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

type storiesLoadedMsg []*v1.Story
type storyChosenMsg struct{ story *v1.Story }
type watchStartedMsg struct{ changes <-chan struct{} }
type storiesChangedMsg struct{ changes <-chan struct{} }
type statusMessageTimeoutMsg struct{ seq int }

// loadStoriesCmd loads the repository off the event loop. An empty but
// readable repository is not an error worth a dialog, so ErrNoStoriesFound
// comes back as an empty list.
func loadStoriesCmd(ctx context.Context, repo db.StoryRepository) tea.Cmd {
	return func() tea.Msg {
		stories, err := repo.Load(ctx)
		if err != nil && !errors.Is(err, db.ErrNoStoriesFound) {
			return errMsg{err}
		}
		return storiesLoadedMsg(stories)
	}
}

func watchStoriesCmd(ctx context.Context, repo db.StoryRepository) tea.Cmd {
	return func() tea.Msg {
		ch, err := repo.Watch(ctx)
		if err != nil {
			return errMsg{err}
		}
		return watchStartedMsg{changes: ch}
	}
}

// waitForChangesCmd blocks until the repository reports a change. It
// returns nil once the watch is over.
func waitForChangesCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storiesChangedMsg{changes: ch}
	}
}

func waitForStatusMessageTimeout(seq int) tea.Cmd {
	return tea.Tick(statusMessageTimeout, func(time.Time) tea.Msg {
		return statusMessageTimeoutMsg{seq: seq}
	})
}
