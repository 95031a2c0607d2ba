// Package session replays scripted pointer sessions through a renderer
// and keeps a JSONL transcript of what they dispatched.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/msalah0e/helix/internal/physics"
	"github.com/msalah0e/helix/internal/renderer"
)

// Event types.
const (
	Down   = "down"
	Move   = "move"
	Up     = "up"
	Leave  = "leave"
	Scroll = "scroll"
	Hover  = "hover"
	Click  = "click"
	Tick   = "tick"
	Resize = "resize"
	Focus  = "focus"
	Rotate = "rotate"
)

// Event is one scripted input. Fields are read per Type.
type Event struct {
	Type     string  `toml:"type" yaml:"type" json:"type" validate:"required,oneof=down move up leave scroll hover click tick resize focus rotate"`
	X        float64 `toml:"x" yaml:"x" json:"x,omitempty"`
	Y        float64 `toml:"y" yaml:"y" json:"y,omitempty"`
	Delta    float64 `toml:"delta" yaml:"delta" json:"delta,omitempty"`
	ID       string  `toml:"id" yaml:"id" json:"id,omitempty"`
	Modifier bool    `toml:"modifier" yaml:"modifier" json:"modifier,omitempty"`
	// Frames is the tick length in 60 Hz frames; 0 means one.
	Frames   int     `toml:"frames" yaml:"frames" json:"frames,omitempty" validate:"gte=0"`
	Width    float64 `toml:"width" yaml:"width" json:"width,omitempty"`
	Height   float64 `toml:"height" yaml:"height" json:"height,omitempty"`
	Rotation float64 `toml:"rotation" yaml:"rotation" json:"rotation,omitempty"`
}

// Session is a named list of events.
type Session struct {
	Name   string  `toml:"name" yaml:"name"`
	Events []Event `toml:"event" yaml:"events" validate:"dive"`
}

// Entry is what one event did.
type Entry struct {
	Index    int       `json:"index"`
	Event    string    `json:"event"`
	Intent   string    `json:"intent,omitempty"`
	TargetID string    `json:"target_id,omitempty"`
	Strand   string    `json:"strand,omitempty"`
	Hovered  string    `json:"hovered,omitempty"`
	Selected string    `json:"selected,omitempty"`
	Rotation float64   `json:"rotation"`
	Paused   bool      `json:"paused,omitempty"`
	At       time.Time `json:"at"`
}

// Load reads a TOML or YAML session file.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	s := &Session{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, s)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, s)
	default:
		return nil, fmt.Errorf("session %s: unsupported format", path)
	}
	if err != nil {
		return nil, fmt.Errorf("decode session %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks event types.
func (s *Session) Validate() error {
	err := validator.New().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate session: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %q is not a valid %s", strings.TrimPrefix(fe.Namespace(), "Session."), fmt.Sprint(fe.Value()), strings.ToLower(fe.Field())))
	}
	return fmt.Errorf("invalid session: %s", strings.Join(msgs, "; "))
}

// Play feeds every event to r in order. Clicks and hovers given an id
// target the node's position in the last drawn frame.
func Play(r *renderer.Renderer, s *Session) []Entry {
	entries := make([]Entry, 0, len(s.Events))
	for i, ev := range s.Events {
		var in physics.Intent
		switch ev.Type {
		case Down:
			r.PointerDown(ev.X, ev.Y)
		case Move:
			r.PointerMove(ev.X, ev.Y)
		case Up:
			r.PointerUp(ev.X, ev.Y)
		case Leave:
			r.PointerLeave()
		case Scroll:
			r.Scroll(ev.Delta)
		case Hover:
			if ev.ID != "" {
				r.HoverNode(ev.ID)
			} else {
				r.PointerMove(ev.X, ev.Y)
			}
		case Click:
			x, y := ev.X, ev.Y
			if ev.ID != "" {
				x, y = position(r, ev.ID)
			}
			in = r.Click(x, y, ev.Modifier)
		case Tick:
			frames := max(ev.Frames, 1)
			r.Tick(time.Duration(frames) * physics.FrameDuration)
		case Resize:
			r.UpdateViewportSize(ev.Width, ev.Height)
		case Focus:
			r.SetInteractionFocus(ev.ID)
		case Rotate:
			r.SetRotation(ev.Rotation)
		}
		entries = append(entries, entry(i, ev, in, r.State()))
	}
	return entries
}

// position finds id in the last frame, or a point off every node.
func position(r *renderer.Renderer, id string) (float64, float64) {
	for _, v := range r.Visuals() {
		if v.ID == id && !v.Ghost {
			return v.Point.X, v.Point.Y
		}
	}
	return math.Inf(-1), math.Inf(-1)
}

func entry(i int, ev Event, in physics.Intent, st physics.State) Entry {
	e := Entry{
		Index:    i,
		Event:    ev.Type,
		Hovered:  st.HoveredID,
		Selected: st.SelectedID,
		Rotation: st.Rotation,
		Paused:   st.Paused,
		At:       time.Now(),
	}
	if in.Kind != physics.IntentNone {
		e.Intent = in.Kind.String()
		e.TargetID = in.ID
		if in.Kind != physics.IntentClear {
			e.Strand = in.Strand.String()
		}
	}
	return e
}

// Intents filters entries that dispatched something.
func Intents(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Intent != "" {
			out = append(out, e)
		}
	}
	return out
}

// Save appends entries to a JSONL transcript.
func Save(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return nil
}

// List returns the last n entries of a transcript, most recent first.
func List(path string, n int) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var all []Entry
	dec := json.NewDecoder(f)
	for dec.More() {
		var e Entry
		if err := dec.Decode(&e); err != nil {
			break
		}
		all = append(all, e)
	}

	// Return last n
	if n > 0 && len(all) > n {
		all = all[len(all)-n:]
	}

	// Reverse for most-recent-first
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}

	return all, nil
}
