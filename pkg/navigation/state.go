// Package navigation holds where the reader is: the selected story and the
// scene within it. It is the single source of truth for both and pushes
// every change to its subscribers synchronously.
package navigation

import (
	"github.com/byxorna/fable/pkg/types/v1"
)

// Change is delivered to subscribers after every mutation.
type Change struct {
	Story      *v1.Story
	SceneIndex int
	// StoryChanged is set when the change came from SelectStory, including
	// re-selecting the story that was already selected.
	StoryChanged bool
	Generation   uint64
}

// State is not safe for concurrent use. It is owned by the UI event loop.
type State struct {
	story      *v1.Story
	sceneIndex int
	generation uint64

	listeners []func(Change)
}

func New() *State {
	return &State{}
}

// SelectStory makes story current and rewinds to its first scene. Selecting
// the current story again is a full reset, not a no-op.
func (s *State) SelectStory(story *v1.Story) {
	s.story = story
	s.sceneIndex = 0
	s.generation++
	s.notify(true)
}

// Advance moves to the next scene. At the last scene it does nothing.
func (s *State) Advance() bool {
	if !s.CanAdvance() {
		return false
	}
	s.sceneIndex++
	s.notify(false)
	return true
}

// Retreat moves to the previous scene. At the first scene it does nothing.
func (s *State) Retreat() bool {
	if !s.CanRetreat() {
		return false
	}
	s.sceneIndex--
	s.notify(false)
	return true
}

func (s *State) CanAdvance() bool {
	return s.story != nil && s.sceneIndex < s.story.Len()-1
}

func (s *State) CanRetreat() bool {
	return s.story != nil && s.sceneIndex > 0
}

func (s *State) Story() *v1.Story { return s.story }
func (s *State) SceneIndex() int  { return s.sceneIndex }

// Generation increases with every SelectStory call. Work scheduled against
// one selection can compare it to tell whether the selection moved on.
func (s *State) Generation() uint64 { return s.generation }

// CurrentScene returns the scene being shown, or false when there is no
// story or the story has no scenes.
func (s *State) CurrentScene() (v1.Scene, bool) {
	return s.story.Scene(s.sceneIndex)
}

// Subscribe registers fn for every subsequent change and returns a func
// that unregisters it.
func (s *State) Subscribe(fn func(Change)) func() {
	s.listeners = append(s.listeners, fn)
	idx := len(s.listeners) - 1
	return func() {
		// keep indexes of later subscriptions stable
		s.listeners[idx] = nil
	}
}

func (s *State) notify(storyChanged bool) {
	c := Change{
		Story:        s.story,
		SceneIndex:   s.sceneIndex,
		StoryChanged: storyChanged,
		Generation:   s.generation,
	}
	for _, fn := range s.listeners {
		if fn != nil {
			fn(c)
		}
	}
}
