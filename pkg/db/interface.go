package db

import (
	"context"
	"fmt"

	"github.com/byxorna/fable/pkg/types/v1"
)

var (
	ErrNoStoriesFound = fmt.Errorf("no stories found")
	ErrNoIndex        = fmt.Errorf("no story index found")
	ErrInvalidStory   = fmt.Errorf("invalid story")
)

// StoryRepository is the interface any story source satisfies. The viewer
// only ever reads from it.
type StoryRepository interface {
	// List returns a snapshot of the stories loaded so far, in order.
	List() []*v1.Story
	// Load (re)reads all stories from the backing store and returns them.
	Load(ctx context.Context) ([]*v1.Story, error)
	// Watch emits a value whenever the backing store changed and a Load
	// would return something different. The channel closes with ctx.
	Watch(ctx context.Context) (<-chan struct{}, error)

	Status() v1.SyncStatus
	StoragePath() string
}
