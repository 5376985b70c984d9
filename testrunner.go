package warpcam

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Button string  `json:"button,omitempty"`
	Key    string  `json:"key,omitempty"`
	Value  string  `json:"value,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Ticks  float64 `json:"ticks,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var stepKeys = map[string]ControlKeys{
	"exit":        KeyExit,
	"filter_next": KeyFilterNext,
	"filter_prev": KeyFilterPrev,
	"gpu":         KeyModeGPU,
	"cpu":         KeyModeCPU,
	"1":           KeyPreset1,
	"2":           KeyPreset2,
	"3":           KeyPreset3,
	"4":           KeyPreset4,
	"screenshot":  KeyScreenshot,
	"hud":         KeyHUD,
}

// TestRunner sequences injected input and screenshots across frames for
// automated visual comparison of the render paths. Attach it with
// App.SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	// ExitWhenDone injects an exit key once the script finishes.
	ExitWhenDone bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// LoadTestScriptFile reads and parses a JSON test script file.
func LoadTestScriptFile(path string) (*TestRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test script: %w", err)
	}
	return LoadTestScript(data)
}

func (st testStep) validate() error {
	switch st.Action {
	case "press", "move", "release", "drag", "scroll", "reset", "wait", "screenshot":
	case "key":
		if _, ok := stepKeys[st.Key]; !ok {
			return fmt.Errorf("unknown key %q", st.Key)
		}
	case "mode":
		if _, err := ParseRenderMode(st.Value); err != nil {
			return err
		}
	case "filter":
		if _, err := ParseFilterKind(st.Value); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	switch strings.ToLower(st.Button) {
	case "", "left", "right":
	default:
		return fmt.Errorf("unknown button %q", st.Button)
	}
	return nil
}

func (st testStep) button() MouseButton {
	if strings.EqualFold(st.Button, "right") {
		return MouseButtonRight
	}
	return MouseButtonLeft
}

// SetTestRunner attaches a runner. Its step method runs at the start of
// every Update, before input is read.
func (a *App) SetTestRunner(r *TestRunner) {
	a.runner = r
}

// Done reports whether every step has executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *TestRunner) step(a *App) {
	if r.done {
		return
	}
	// Let pending injections drain before advancing.
	if a.inject.pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.finish(a)
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		a.Screenshot(st.Label)
	case "press":
		a.InjectPress(st.X, st.Y, st.button())
	case "move":
		a.InjectMove(st.X, st.Y)
	case "release":
		a.InjectRelease(st.X, st.Y, st.button())
	case "drag":
		a.InjectDrag(st.button(), st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "scroll":
		a.InjectScroll(st.Ticks)
	case "reset":
		a.InjectReset()
	case "key":
		a.InjectKeys(stepKeys[st.Key])
	case "mode":
		m, _ := ParseRenderMode(st.Value)
		a.SetMode(m)
	case "filter":
		k, _ := ParseFilterKind(st.Value)
		a.SetFilter(k)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && a.inject.pending() == 0 {
		r.finish(a)
	}
}

func (r *TestRunner) finish(a *App) {
	if r.done {
		return
	}
	r.done = true
	if r.ExitWhenDone {
		a.InjectKeys(KeyExit)
	}
}
