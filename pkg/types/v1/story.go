package v1

import (
	"fmt"
	"time"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"
)

// StoryCollection is the decoded form of a story index: an ordered list of
// story file paths, relative to the index.
type StoryCollection struct {
	Paths []string `yaml:"paths" validate:"dive,required"`
}

// UnmarshalYAML accepts both a bare sequence of paths (the stories.json
// format) and a mapping with a paths key.
func (c *StoryCollection) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		return value.Decode(&c.Paths)
	}
	type plain StoryCollection
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = StoryCollection(p)
	return nil
}

func (c *StoryCollection) Validate() error {
	return validate.Struct(*c)
}

// Story is an ordered sequence of scenes. It is never mutated after loading;
// everything downstream holds a *Story and compares by pointer.
type Story struct {
	Title  string  `yaml:"storyTitle" validate:"required"`
	Scenes []Scene `yaml:"scenes" validate:"dive"`

	// Source is the file the story was read from. Size and Modified describe
	// that file at load time.
	Source   string    `yaml:"-"`
	Size     int64     `yaml:"-"`
	Modified time.Time `yaml:"-"`
}

// Scene is one page pair: text on the left, an illustration on the right.
type Scene struct {
	Index          int    `yaml:"index" validate:"min=0"`
	Text           string `yaml:"text" validate:""`
	ImageReference string `yaml:"imagePath" validate:""`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(sceneOrderValidation, Story{})
	return v
}

// sceneOrderValidation requires every scene index to equal its position.
func sceneOrderValidation(sl validator.StructLevel) {
	s := sl.Current().Interface().(Story)
	for i, sc := range s.Scenes {
		if sc.Index != i {
			sl.ReportError(s.Scenes, "Scenes", "Scenes", "sceneorder", fmt.Sprintf("%d", i))
			return
		}
	}
}

func (s *Story) Validate() error {
	return validate.Struct(*s)
}

// Len is the number of scenes. A nil story has none.
func (s *Story) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Scenes)
}

// Scene returns the scene at i, or false when i is out of range.
func (s *Story) Scene(i int) (Scene, bool) {
	if s == nil || i < 0 || i >= len(s.Scenes) {
		return Scene{}, false
	}
	return s.Scenes[i], true
}

func (s *Story) FilterValue() string { return s.Title }

// Caption is the alt text shown under a scene illustration.
func (sc Scene) Caption() string {
	return fmt.Sprintf("Scene %d", sc.Index+1)
}
