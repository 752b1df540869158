package fs

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/byxorna/fable/pkg/db"
	"github.com/byxorna/fable/pkg/types/v1"
	"github.com/go-playground/validator"
	"github.com/mitchellh/go-homedir"
	"github.com/muesli/gitcha"
	"gopkg.in/yaml.v3"
)

var (
	// IndexNames are the story index locations tried, in order, relative to
	// the story directory.
	IndexNames = []string{
		"stories.json",
		"stories.yaml",
		filepath.Join("stories", "stories.json"),
	}

	// StoryGlobs are used to discover story files when there is no index.
	StoryGlobs = []string{"*.json", "*.yaml", "*.yml"}
)

type Loader struct {
	*sync.Mutex
	Directory string        `validate:"required"`
	status    v1.SyncStatus `validate:"required"`
	stories   []*v1.Story
}

func New(dir string) (*Loader, error) {
	expandedPath, err := homedir.Expand(dir)
	if err != nil {
		return nil, err
	}

	l := Loader{
		Mutex:     &sync.Mutex{},
		Directory: expandedPath,
		status:    v1.StatusUninitialized,
	}

	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("error validating storage provider: %w", err)
	}

	finfo, err := os.Stat(l.Directory)
	if err != nil {
		return nil, fmt.Errorf("unable to open story directory %s: %w", l.Directory, err)
	}
	if !finfo.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", l.Directory)
	}

	return &l, nil
}

func (x *Loader) Validate() error {
	validate := validator.New()
	return validate.Struct(*x)
}

// Load reads every story named by the index, or every story file found
// under the directory when there is no index. Invalid story files are logged
// and skipped; the result is empty only if nothing valid was found.
func (x *Loader) Load(ctx context.Context) ([]*v1.Story, error) {
	x.setStatus(v1.StatusLoading)

	paths, err := x.indexedPaths()
	if err == db.ErrNoIndex {
		paths, err = x.discoverPaths()
	}
	if err != nil {
		x.setStatus(v1.StatusError)
		return nil, err
	}

	stories := []*v1.Story{}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			x.setStatus(v1.StatusError)
			return nil, err
		}

		s, err := x.LoadFromFile(p)
		if err != nil {
			log.Printf("skipping %s: %v", p, err)
			continue
		}
		stories = append(stories, s)
	}

	x.Lock()
	x.stories = stories
	x.status = v1.StatusOK
	x.Unlock()

	if len(stories) == 0 {
		return stories, db.ErrNoStoriesFound
	}
	return stories, nil
}

func (x *Loader) indexedPaths() ([]string, error) {
	for _, name := range IndexNames {
		fn := filepath.Join(x.Directory, name)
		f, err := os.Open(fn)
		if err != nil {
			continue
		}
		defer f.Close()

		c, err := x.LoadIndexFromReader(f)
		if err != nil {
			return nil, fmt.Errorf("unable to read index %s: %w", fn, err)
		}

		paths := make([]string, len(c.Paths))
		for i, p := range c.Paths {
			paths[i] = x.resolve(p)
		}
		return paths, nil
	}
	return nil, db.ErrNoIndex
}

func (x *Loader) discoverPaths() ([]string, error) {
	ch, err := gitcha.FindFilesExcept(x.Directory, StoryGlobs, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to search %s: %w", x.Directory, err)
	}

	paths := []string{}
	for res := range ch {
		paths = append(paths, res.Path)
	}
	sort.Strings(paths)
	return paths, nil
}

func (x *Loader) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(x.Directory, p)
}

func (x *Loader) LoadIndexFromReader(r io.Reader) (*v1.StoryCollection, error) {
	var c v1.StoryCollection

	bytes, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read: %w", err)
	}

	if err := yaml.Unmarshal(bytes, &c); err != nil {
		return nil, fmt.Errorf("unable to deserialize index: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (x *Loader) LoadFromFile(fileName string) (*v1.Story, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", fileName, err)
	}
	defer f.Close()

	s, err := x.LoadFromReader(f)
	if err != nil {
		return nil, err
	}

	s.Source = fileName
	if finfo, err := f.Stat(); err == nil {
		s.Size = finfo.Size()
		s.Modified = finfo.ModTime()
	}
	return s, nil
}

func (x *Loader) LoadFromReader(r io.Reader) (*v1.Story, error) {
	var s v1.Story

	bytes, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read: %w", err)
	}

	if err := yaml.Unmarshal(bytes, &s); err != nil {
		return nil, fmt.Errorf("unable to deserialize story: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", db.ErrInvalidStory, err.Error())
	}

	return &s, nil
}

// List returns stories in load order
func (x *Loader) List() []*v1.Story {
	x.Lock()
	defer x.Unlock()

	out := make([]*v1.Story, len(x.stories))
	copy(out, x.stories)
	return out
}

func (x *Loader) Count() int {
	x.Lock()
	defer x.Unlock()
	return len(x.stories)
}

func (x *Loader) Status() v1.SyncStatus {
	x.Lock()
	defer x.Unlock()
	return x.status
}

func (x *Loader) setStatus(s v1.SyncStatus) {
	x.Lock()
	defer x.Unlock()
	x.status = s
}

func (x *Loader) StoragePath() string {
	return x.Directory
}
