package fs

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceTime collapses bursts of writes (editors often write a file
// several times on save) into a single change notification.
var DebounceTime = 500 * time.Millisecond

// Watch notifies on the returned channel whenever a story or index file
// under the directory is created, written, removed or renamed.
func (x *Loader) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs := []string{x.Directory}
	if finfo, err := os.Stat(filepath.Join(x.Directory, "stories")); err == nil && finfo.IsDir() {
		dirs = append(dirs, filepath.Join(x.Directory, "stories"))
	}
	for _, d := range dirs {
		if err := watcher.Add(d); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("unable to watch %s: %w", d, err)
		}
	}

	var (
		mu       sync.Mutex
		closed   bool
		debounce *time.Timer
	)

	changes := make(chan struct{}, 1)
	notify := func() {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case changes <- struct{}{}:
		default:
		}
	}

	go func() {
		defer func() {
			mu.Lock()
			if debounce != nil {
				debounce.Stop()
			}
			closed = true
			close(changes)
			mu.Unlock()
			_ = watcher.Close()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isStoryFile(event.Name) {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				mu.Lock()
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(DebounceTime, notify)
				mu.Unlock()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("story watcher: %v", err)
			}
		}
	}()

	return changes, nil
}

func isStoryFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, g := range StoryGlobs {
		if ext == strings.TrimPrefix(g, "*") {
			return true
		}
	}
	return false
}
