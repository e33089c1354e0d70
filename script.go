package quill

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tidwall/gjson"
)

// scriptStep is a single action in an interaction script.
type scriptStep struct {
	action string
	x, y   float64
	text   string
	key    string
	ms     int64
}

// Script is a parsed sequence of interaction steps for driving a Tool in
// automated tests without a real input device.
type Script struct {
	steps []scriptStep
}

// LoadScript parses a JSON interaction script:
//
//	{"steps": [
//	  {"action": "click", "x": 50, "y": 50},
//	  {"action": "type", "text": "Hi"},
//	  {"action": "doubleclick", "x": 50, "y": 50},
//	  {"action": "key", "key": "left"},
//	  {"action": "wait", "ms": 300},
//	  {"action": "deactivate"}
//	]}
//
// Supported actions: click, doubleclick, move, drag (x/y = destination,
// press point taken from the previous step), type, key, wait, deactivate.
func LoadScript(data []byte) (*Script, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("quill: parse script: invalid JSON")
	}
	steps := gjson.GetBytes(data, "steps")
	if !steps.IsArray() {
		return nil, fmt.Errorf("quill: parse script: missing \"steps\" array")
	}
	var s Script
	var parseErr error
	steps.ForEach(func(_, v gjson.Result) bool {
		action := v.Get("action").String()
		if action == "" {
			parseErr = fmt.Errorf("quill: parse script: step %d has no action", len(s.steps))
			return false
		}
		s.steps = append(s.steps, scriptStep{
			action: action,
			x:      v.Get("x").Float(),
			y:      v.Get("y").Float(),
			text:   v.Get("text").String(),
			key:    v.Get("key").String(),
			ms:     v.Get("ms").Int(),
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(s.steps) == 0 {
		return nil, fmt.Errorf("quill: parse script: no steps")
	}
	return &s, nil
}

// scriptStepGap separates consecutive steps on the virtual clock so two
// scripted clicks never classify as a double-click by accident. The
// doubleclick action spaces its two presses well inside the threshold.
const (
	scriptStepGap   = 500 * time.Millisecond
	scriptDoubleGap = 100 * time.Millisecond
)

var scriptKeys = map[string]ebiten.Key{
	"left":  ebiten.KeyArrowLeft,
	"right": ebiten.KeyArrowRight,
	"up":    ebiten.KeyArrowUp,
	"down":  ebiten.KeyArrowDown,
}

// ScriptRunner replays a Script against a Tool on a virtual clock.
type ScriptRunner struct {
	tool    *Tool
	overlay TypingOverlay
	now     time.Time
	last    Vec2
}

// NewScriptRunner creates a runner delivering events to tool, simulating
// typing through overlay.
func NewScriptRunner(tool *Tool, overlay TypingOverlay) *ScriptRunner {
	return &ScriptRunner{
		tool:    tool,
		overlay: overlay,
		now:     time.Unix(0, 0),
	}
}

// Run replays every step synchronously. The virtual clock advances
// scriptStepGap between steps plus any explicit wait.
func (r *ScriptRunner) Run(s *Script) error {
	for i, st := range s.steps {
		if err := r.step(st); err != nil {
			return fmt.Errorf("quill: run script: step %d (%s): %w", i, st.action, err)
		}
		r.now = r.now.Add(scriptStepGap)
	}
	return nil
}

func (r *ScriptRunner) step(st scriptStep) error {
	switch st.action {
	case "click":
		r.press(Vec2{st.x, st.y})
		r.release(Vec2{st.x, st.y})

	case "doubleclick":
		p := Vec2{st.x, st.y}
		r.press(p)
		r.release(p)
		r.now = r.now.Add(scriptDoubleGap)
		r.press(p)
		r.release(p)

	case "move":
		r.tool.OnPointerMove(r.event(Vec2{st.x, st.y}))
		r.last = Vec2{st.x, st.y}

	case "drag":
		from := r.last
		to := Vec2{st.x, st.y}
		r.press(from)
		mid := Vec2{(from.X + to.X) / 2, (from.Y + to.Y) / 2}
		r.tool.OnPointerDrag(r.event(mid))
		r.tool.OnPointerDrag(r.event(to))
		r.release(to)

	case "type":
		if r.overlay == nil {
			return fmt.Errorf("no typing overlay attached")
		}
		r.overlay.TypeString(st.text)

	case "key":
		key, ok := scriptKeys[st.key]
		if !ok {
			return fmt.Errorf("unknown key %q", st.key)
		}
		evt := KeyEvent{Key: key, Time: r.now}
		r.tool.OnKeyDown(evt)
		r.tool.OnKeyUp(evt)

	case "wait":
		r.now = r.now.Add(time.Duration(st.ms) * time.Millisecond)

	case "deactivate":
		r.tool.Deactivate()

	default:
		return fmt.Errorf("unknown action")
	}
	return nil
}

func (r *ScriptRunner) event(p Vec2) PointerEvent {
	return PointerEvent{Point: p, Time: r.now, Button: MouseButtonLeft}
}

func (r *ScriptRunner) press(p Vec2) {
	r.tool.OnPointerDown(r.event(p))
	r.last = p
}

func (r *ScriptRunner) release(p Vec2) {
	r.tool.OnPointerUp(r.event(p))
	r.last = p
}
