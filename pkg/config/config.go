package config

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/byxorna/fable/pkg/book"
	"github.com/byxorna/fable/pkg/gesture"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

var (
	// Default is the configuration used when ~/.fable.yaml is missing, and the
	// base every config file is decoded over.
	Default = Config{
		Directory:        "~/.fable.d",
		MinSwipeDistance: gesture.DefaultMinSwipeDistance,
		CellWidth:        8,
		CellHeight:       16,
		Timing:           book.DefaultTiming,
		GlamourStyle:     "auto",
		Mouse:            true,
		AltScreen:        true,
		Watch:            true,
	}
)

type Config struct {
	Directory string `yaml:"directory" validate:"required" env:"FABLE_DIRECTORY"`

	// MinSwipeDistance is in the same units as CellWidth and CellHeight.
	MinSwipeDistance float64 `yaml:"minSwipeDistance" validate:"gt=0" env:"FABLE_MIN_SWIPE_DISTANCE"`
	CellWidth        float64 `yaml:"cellWidth" validate:"gt=0" env:"FABLE_CELL_WIDTH"`
	CellHeight       float64 `yaml:"cellHeight" validate:"gt=0" env:"FABLE_CELL_HEIGHT"`

	Timing               book.Timing `yaml:"timing"`
	CancelFlipOnCollapse bool        `yaml:"cancelFlipOnCollapse" env:"FABLE_CANCEL_FLIP_ON_COLLAPSE"`

	// GlamourStyle is "auto" or anything glamour.WithStylePath accepts.
	GlamourStyle string `yaml:"glamourStyle" validate:"required" env:"FABLE_GLAMOUR_STYLE"`
	Mouse        bool   `yaml:"mouse" env:"FABLE_MOUSE"`
	AltScreen    bool   `yaml:"altScreen" env:"FABLE_ALT_SCREEN"`
	LogFile      string `yaml:"logFile,omitempty" env:"FABLE_LOG_FILE"`
	Watch        bool   `yaml:"watch" env:"FABLE_WATCH"`
}

func NewFromReader(r io.Reader) (*Config, error) {
	c := Default

	bytes, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read Config: %w", err)
	}
	err = yaml.Unmarshal(bytes, &c)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal Config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads the config file at path, falling back to Default when the file
// does not exist, then applies FABLE_* environment overrides.
func Load(path string) (*Config, error) {
	expandedPath, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	var c *Config
	f, err := os.Open(expandedPath)
	switch {
	case os.IsNotExist(err):
		d := Default
		c = &d
	case err != nil:
		return nil, fmt.Errorf("unable to open %s: %w", expandedPath, err)
	default:
		defer f.Close()
		c, err = NewFromReader(f)
		if err != nil {
			return nil, fmt.Errorf("unable to load configuration: %w", err)
		}
	}

	if err := ParseEnv(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseEnv overrides fields of c from the environment.
func ParseEnv(c *Config) error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	if err := c.Timing.Check(); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	return nil
}
