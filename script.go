package gameloop

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrEmptyScript is returned when a frame script has no steps.
var ErrEmptyScript = errors.New("gameloop: frame script has no steps")

// Script actions.
const (
	ActionFrame        = "frame"          // advance time by Delta and run a frame, Frames times (0 means 1)
	ActionAdvance      = "advance"        // advance time by Delta without a frame
	ActionUpdateRate   = "ups"            // SetUpdatesPerSecond(UPS)
	ActionMaxFrameTime = "max_frame_time" // SetMaxFrameTime(Delta)
	ActionReAccumulate = "reaccumulate"
	ActionOcclude      = "occlude"
	ActionReveal       = "reveal"
	ActionExit         = "exit"
)

// ScriptStep is a single action in a frame script. For a frame step, Frames
// zero or omitted runs one frame.
type ScriptStep struct {
	Action string        `yaml:"action"`
	Delta  time.Duration `yaml:"delta,omitempty"`
	Frames int           `yaml:"frames,omitempty"`
	UPS    int           `yaml:"ups,omitempty"`
}

type frameScript struct {
	Steps []ScriptStep `yaml:"steps"`
}

// LoopControl is the part of a Loop a script can steer. *Loop satisfies it.
type LoopControl interface {
	Exit()
	ReAccumulate()
	SetUpdatesPerSecond(ups int) error
	SetMaxFrameTime(d time.Duration) error
	SetOccluded(occluded bool)
}

// ScriptHost plays a frame script against a loop running on manual time.
// Frames happen exactly when the script says and see exactly the elapsed
// time it gives, so whole runs are reproducible. The loop must be built
// with Config.TimeSource set to Time.
type ScriptHost struct {
	Time    *ManualTime
	Control LoopControl

	steps  []ScriptStep
	cursor int
	frames int
}

// LoadScript parses a YAML frame script:
//
//	steps:
//	  - action: frame
//	  - action: frame
//	    delta: 16ms
//	    frames: 30
//	  - action: ups
//	    ups: 120
//	  - action: exit
func LoadScript(data []byte) (*ScriptHost, error) {
	var script frameScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse frame script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse frame script: %w", ErrEmptyScript)
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse frame script: step %d: %w", i, err)
		}
	}
	return &ScriptHost{steps: script.Steps}, nil
}

// LoadScriptFile reads and parses the frame script at path.
func LoadScriptFile(path string) (*ScriptHost, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read frame script: %w", err)
	}
	return LoadScript(data)
}

func (st ScriptStep) validate() error {
	switch st.Action {
	case ActionAdvance:
		if st.Delta < 0 {
			return fmt.Errorf("negative delta %v", st.Delta)
		}
	case ActionFrame:
		if st.Delta < 0 || st.Frames < 0 {
			return fmt.Errorf("negative delta %v or frames %d", st.Delta, st.Frames)
		}
	case ActionUpdateRate:
		if st.UPS <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidUpdateRate, st.UPS)
		}
	case ActionMaxFrameTime:
		if st.Delta <= 0 {
			return fmt.Errorf("%w: got %v", ErrInvalidMaxFrameTime, st.Delta)
		}
	case ActionReAccumulate, ActionOcclude, ActionReveal, ActionExit:
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Drive plays the script. It returns when the stepper reports stop or the
// script runs out, whichever comes first.
func (h *ScriptHost) Drive(s Stepper) error {
	if h.Time == nil || h.Control == nil {
		return errors.New("gameloop: script host needs Time and Control")
	}
	for h.cursor < len(h.steps) {
		st := h.steps[h.cursor]
		h.cursor++

		switch st.Action {
		case ActionFrame:
			n := max(st.Frames, 1)
			for range n {
				h.Time.Advance(st.Delta)
				h.frames++
				if !s.Step() {
					return nil
				}
			}
		case ActionAdvance:
			h.Time.Advance(st.Delta)
		case ActionUpdateRate:
			if err := h.Control.SetUpdatesPerSecond(st.UPS); err != nil {
				return fmt.Errorf("script step %d: %w", h.cursor-1, err)
			}
		case ActionMaxFrameTime:
			if err := h.Control.SetMaxFrameTime(st.Delta); err != nil {
				return fmt.Errorf("script step %d: %w", h.cursor-1, err)
			}
		case ActionReAccumulate:
			h.Control.ReAccumulate()
		case ActionOcclude:
			h.Control.SetOccluded(true)
		case ActionReveal:
			h.Control.SetOccluded(false)
		case ActionExit:
			h.Control.Exit()
		}
	}
	return nil
}

// Done reports whether every step has been played.
func (h *ScriptHost) Done() bool {
	return h.cursor >= len(h.steps)
}

// Frames returns how many frames the script has run.
func (h *ScriptHost) Frames() int {
	return h.frames
}
