package book

import (
	"fmt"
	"time"
)

// Timing is how long after an accepted flip the scene changes (Mutate) and
// when the flip is over (Clear). The scene changes before the page lands so
// the back of the turning page already shows the new scene. Forward and
// backward turns use different curves, hence different values.
type Timing struct {
	NextMutate     time.Duration `yaml:"nextMutate" validate:"gt=0,ltfield=NextClear" env:"FABLE_NEXT_MUTATE"`
	NextClear      time.Duration `yaml:"nextClear" validate:"gt=0" env:"FABLE_NEXT_CLEAR"`
	PreviousMutate time.Duration `yaml:"previousMutate" validate:"gt=0,ltfield=PreviousClear" env:"FABLE_PREVIOUS_MUTATE"`
	PreviousClear  time.Duration `yaml:"previousClear" validate:"gt=0" env:"FABLE_PREVIOUS_CLEAR"`
}

var DefaultTiming = Timing{
	NextMutate:     725 * time.Millisecond,
	NextClear:      775 * time.Millisecond,
	PreviousMutate: 600 * time.Millisecond,
	PreviousClear:  1200 * time.Millisecond,
}

// Check enforces mutate < clear for both directions.
func (t Timing) Check() error {
	if t.NextMutate <= 0 || t.PreviousMutate <= 0 {
		return fmt.Errorf("flip delays must be positive: %+v", t)
	}
	if t.NextMutate >= t.NextClear {
		return fmt.Errorf("next flip changes the scene at %s but ends at %s", t.NextMutate, t.NextClear)
	}
	if t.PreviousMutate >= t.PreviousClear {
		return fmt.Errorf("previous flip changes the scene at %s but ends at %s", t.PreviousMutate, t.PreviousClear)
	}
	return nil
}
