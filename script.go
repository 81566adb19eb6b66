package tactile

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action   string  `json:"action"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	From     float64 `json:"from,omitempty"` // pinch start distance
	To       float64 `json:"to,omitempty"`   // pinch end distance
	Duration int     `json:"ms,omitempty"`
}

func (st scriptStep) duration() time.Duration {
	return time.Duration(st.Duration) * time.Millisecond
}

// gestureScript is the top-level JSON structure for a script.
type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

// Script replays a JSON sequence of synthetic gestures through an Injector.
// Supported actions: tap, hold, drag, flick, pinch, wait, cancel.
type Script struct {
	steps []scriptStep
}

// LoadScript parses a JSON gesture script.
func LoadScript(jsonData []byte) (*Script, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "tap", "hold", "drag", "flick", "pinch", "wait", "cancel":
		default:
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
		if st.Duration < 0 {
			return nil, fmt.Errorf("parse gesture script: step %d: negative duration", i)
		}
	}
	return &Script{steps: script.Steps}, nil
}

// Len returns the number of steps.
func (s *Script) Len() int {
	return len(s.steps)
}

// Run executes every step in order.
func (s *Script) Run(j *Injector) {
	for _, st := range s.steps {
		switch st.Action {
		case "tap":
			j.InjectTap(st.X, st.Y)
		case "hold":
			j.InjectHold(st.X, st.Y, st.duration())
		case "drag":
			j.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.duration())
		case "flick":
			j.InjectFlick(st.FromX, st.FromY, st.ToX, st.ToY, st.duration())
		case "pinch":
			j.InjectPinch(st.X, st.Y, st.From, st.To, st.duration())
		case "wait":
			j.Wait(st.duration())
		case "cancel":
			j.Cancel()
		}
	}
}
