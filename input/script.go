package input

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/spatial/r2"
)

// ScriptFrame is one row of an input script. A row is held for Repeat
// frames (at least one).
type ScriptFrame struct {
	MoveX  float64 `csv:"move_x"`
	MoveY  float64 `csv:"move_y"`
	LookX  float64 `csv:"look_x"`
	LookY  float64 `csv:"look_y"`
	Sprint float64 `csv:"sprint"`
	Crouch float64 `csv:"crouch"`
	Repeat int     `csv:"repeat"`
}

// LoadScript parses a CSV input script.
func LoadScript(r io.Reader) ([]ScriptFrame, error) {
	var frames []ScriptFrame
	if err := gocsv.Unmarshal(r, &frames); err != nil {
		return nil, fmt.Errorf("parsing input script: %w", err)
	}
	return frames, nil
}

// LoadScriptFile parses a CSV input script from disk.
func LoadScriptFile(path string) ([]ScriptFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input script: %w", err)
	}
	defer f.Close()
	return LoadScript(f)
}

// ScriptSource replays scripted frames. Once exhausted it reports no input.
type ScriptSource struct {
	frames []ScriptFrame
	row    int // index of the current row
	held   int // frames the current row has been held
	cur    ScriptFrame
	done   bool
}

// NewScriptSource creates a source that replays frames in order.
func NewScriptSource(frames []ScriptFrame) *ScriptSource {
	return &ScriptSource{frames: frames, row: -1, done: len(frames) == 0}
}

// Poll advances to the next scripted frame.
func (s *ScriptSource) Poll() {
	if s.done {
		s.cur = ScriptFrame{}
		return
	}
	if s.row < 0 || s.held >= repeatOf(s.cur) {
		s.row++
		s.cur = s.frames[s.row]
		s.held = 0
	}
	s.held++
	s.done = s.row == len(s.frames)-1 && s.held >= repeatOf(s.cur)
}

// Done reports whether the last scripted frame has been served. The frame
// polled when Done turns true is still scripted input.
func (s *ScriptSource) Done() bool {
	return s.done
}

// MoveAxis implements Source.
func (s *ScriptSource) MoveAxis() r2.Vec {
	return ClampAxis(r2.Vec{X: s.cur.MoveX, Y: s.cur.MoveY})
}

// LookDelta implements Source.
func (s *ScriptSource) LookDelta() r2.Vec {
	return r2.Vec{X: s.cur.LookX, Y: s.cur.LookY}
}

// Button implements Source.
func (s *ScriptSource) Button(action string) float64 {
	switch action {
	case ActionSprint:
		return s.cur.Sprint
	case ActionCrouch:
		return s.cur.Crouch
	}
	return 0
}

// TotalFrames returns the number of frames the script lasts.
func TotalFrames(frames []ScriptFrame) int {
	n := 0
	for _, f := range frames {
		n += repeatOf(f)
	}
	return n
}

func repeatOf(f ScriptFrame) int {
	if f.Repeat < 1 {
		return 1
	}
	return f.Repeat
}

// NopCursor is a Cursor for headless runs.
type NopCursor struct{}

// Lock does nothing.
func (NopCursor) Lock() {}

// Unlock does nothing.
func (NopCursor) Unlock() {}

// Locked reports false; there is no pointer to capture.
func (NopCursor) Locked() bool { return false }
