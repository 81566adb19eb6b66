package tactile

import (
	"testing"
	"time"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "tap", "x": 100, "y": 200},
			{"action": "wait", "ms": 500},
			{"action": "drag", "fromX": 10, "fromY": 20, "toX": 300, "toY": 20, "ms": 200},
			{"action": "pinch", "x": 50, "y": 50, "from": 40, "to": 80, "ms": 100}
		]
	}`)
	s, err := LoadScript(data)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if s.Len() != 4 {
		t.Fatalf("Len = %d, want 4", s.Len())
	}
	if s.steps[2].duration() != 200*time.Millisecond {
		t.Errorf("drag duration = %v, want 200ms", s.steps[2].duration())
	}
}

func TestLoadScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad json", `{bad`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "wiggle"}]}`},
		{"negative duration", `{"steps": [{"action": "wait", "ms": -5}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestScriptRun(t *testing.T) {
	s, err := LoadScript([]byte(`{
		"steps": [
			{"action": "tap", "x": 10, "y": 10},
			{"action": "wait", "ms": 400},
			{"action": "hold", "x": 10, "y": 10, "ms": 600},
			{"action": "wait", "ms": 400},
			{"action": "flick", "fromX": 100, "fromY": 100, "toX": 100, "toY": 10, "ms": 100},
			{"action": "wait", "ms": 400},
			{"action": "drag", "fromX": 10, "fromY": 10, "toX": 200, "toY": 10, "ms": 400},
			{"action": "pinch", "x": 300, "y": 300, "from": 100, "to": 50, "ms": 100},
			{"action": "cancel"}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}

	rec := NewRecognizer(DefaultGestureConfig())
	r := &recorder{}
	rec.OnGesture(r.add)
	s.Run(NewInjector(NewIngestor(rec), rec))

	for _, k := range []GestureKind{GestureTap, GestureLongPress, GestureSwipe} {
		if r.count(k) != 1 {
			t.Errorf("%s count = %d, want 1", k, r.count(k))
		}
	}
	if pan := r.phases(GesturePan); len(pan) == 0 || pan[len(pan)-1] != PhaseEnded {
		t.Errorf("pan phases = %v", pan)
	}
	if pinch := r.phases(GesturePinch); len(pinch) == 0 || pinch[len(pinch)-1] != PhaseEnded {
		t.Errorf("pinch phases = %v", pinch)
	}
	for _, e := range r.events {
		if e.Kind == GestureSwipe && e.Direction != DirectionUp {
			t.Errorf("swipe direction = %s, want up", e.Direction)
		}
	}
}
