package model

import (
	"context"

	"github.com/byxorna/fable/pkg/book"
	"github.com/byxorna/fable/pkg/config"
	"github.com/byxorna/fable/pkg/db"
	"github.com/byxorna/fable/pkg/gesture"
	"github.com/byxorna/fable/pkg/navigation"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// focusArea is where keys go when the book is closed.
type focusArea int

const (
	focusLibrary focusArea = iota
	focusBook
)

func (f focusArea) String() string {
	return map[focusArea]string{
		focusLibrary: "library",
		focusBook:    "book",
	}[f]
}

// Common stuff we'll need to access in all models.
type commonModel struct {
	width  int
	height int
}

type Model struct {
	*config.Config

	repo   db.StoryRepository
	ctx    context.Context
	cancel context.CancelFunc

	nav       *navigation.State
	book      *book.Controller
	gestures  *gesture.Interpreter
	scheduler *teaScheduler

	common  *commonModel
	library list.Model
	pager   *pagerModel
	keys    keyMap
	help    help.Model

	focus    focusArea
	showHelp bool

	statusMessage  string
	statusIsError  bool
	statusSequence int

	fatalErr error
	quitting bool
}

// New wires the navigation state, page-turn controller and gesture
// interpreter to the terminal UI.
func New(cfg *config.Config, repo db.StoryRepository) Model {
	ctx, cancel := context.WithCancel(context.Background())
	common := &commonModel{}
	keys := defaultKeyMap()

	nav := navigation.New()
	scheduler := newTeaScheduler()
	controller := book.New(nav, scheduler, cfg.Timing)
	controller.CancelFlipOnCollapse = cfg.CancelFlipOnCollapse

	m := Model{
		Config: cfg,
		repo:   repo,
		ctx:    ctx,
		cancel: cancel,

		nav:       nav,
		book:      controller,
		scheduler: scheduler,

		common:  common,
		library: newLibrary(nil, keys, 0, 0),
		pager:   newPagerModel(common),
		keys:    keys,
		help:    help.NewModel(),
		focus:   focusLibrary,
	}
	m.gestures = gesture.NewInterpreter(cfg.MinSwipeDistance, controller.IsOpen)

	nav.Subscribe(m.pager.sceneChanged)
	controller.Subscribe(m.pager.flipChanged)

	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadStoriesCmd(m.ctx, m.repo)}
	if m.Config.Watch {
		cmds = append(cmds, watchStoriesCmd(m.ctx, m.repo))
	}
	return tea.Batch(cmds...)
}

// Close cancels a turn in flight and stops watching the repository.
func (m Model) Close() {
	m.book.Close()
	m.cancel()
}
