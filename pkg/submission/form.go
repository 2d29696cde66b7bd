package submission

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultCheckedValue is sent for a checked control without an explicit value.
const DefaultCheckedValue = "on"

// ErrUnknownControl is returned when a value targets a name the form does not
// declare.
var ErrUnknownControl = errors.New("submission: unknown control")

// Entry is one name/value pair of a submission, in form order.
type Entry struct {
	Name  string
	Value string
}

// Form is the live form a Controller reads from and resets.
type Form interface {
	// Entries returns every successful control in document order. Multi-value
	// controls contribute one entry per value.
	Entries() []Entry
	// Reset restores every control to its default.
	Reset()
}

// Control declares one named input of a form.
type Control struct {
	Name string
	// Default is restored on Reset. Hidden inputs keep their value this way.
	Default []string
	// Checkable controls only contribute when checked.
	Checkable    bool
	CheckedValue string
	Checked      bool
	// Multiple controls contribute nothing when empty.
	Multiple bool
}

type controlState struct {
	control Control
	values  []string
	checked bool
}

// Values is an in-memory Form. It is not safe for concurrent mutation; each
// request or terminal session owns its own instance.
type Values struct {
	controls []*controlState
	index    map[string]int
}

// NewValues builds a form from its controls. Later controls with a name that
// is already declared are ignored.
func NewValues(controls ...Control) *Values {
	v := &Values{index: make(map[string]int, len(controls))}
	for _, control := range controls {
		control.Name = strings.TrimSpace(control.Name)
		if control.Name == "" {
			continue
		}
		if _, exists := v.index[control.Name]; exists {
			continue
		}
		if control.Checkable && control.CheckedValue == "" {
			control.CheckedValue = DefaultCheckedValue
		}
		control.Default = append([]string(nil), control.Default...)
		state := &controlState{control: control}
		v.index[control.Name] = len(v.controls)
		v.controls = append(v.controls, state)
	}
	v.Reset()
	return v
}

// Names lists declared controls in order.
func (v *Values) Names() []string {
	if v == nil {
		return nil
	}
	names := make([]string, 0, len(v.controls))
	for _, state := range v.controls {
		names = append(names, state.control.Name)
	}
	return names
}

// Set replaces the value of a control. For checkable controls a non-empty
// value checks the control and an empty one unchecks it.
func (v *Values) Set(name, value string) error {
	state, err := v.lookup(name)
	if err != nil {
		return err
	}
	if state.control.Checkable {
		state.checked = value != ""
		return nil
	}
	state.values = []string{value}
	return nil
}

// Add appends a value, flattening multi-value controls into repeated keys.
func (v *Values) Add(name, value string) error {
	state, err := v.lookup(name)
	if err != nil {
		return err
	}
	if state.control.Checkable {
		state.checked = true
		return nil
	}
	state.values = append(state.values, value)
	return nil
}

// Check marks a checkable control as checked.
func (v *Values) Check(name string, checked bool) error {
	state, err := v.lookup(name)
	if err != nil {
		return err
	}
	if !state.control.Checkable {
		return fmt.Errorf("submission: control %q is not checkable", name)
	}
	state.checked = checked
	return nil
}

// Fill replaces the form contents with a posted entry list, the way a browser
// form looks after the user edited it: controls absent from entries end up
// empty or unchecked.
func (v *Values) Fill(entries []Entry) error {
	if v == nil {
		return nil
	}
	for _, state := range v.controls {
		state.values = nil
		state.checked = false
	}
	var unknown []string
	for _, entry := range entries {
		if err := v.Add(entry.Name, entry.Value); err != nil {
			if errors.Is(err, ErrUnknownControl) {
				unknown = append(unknown, entry.Name)
				continue
			}
			return err
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownControl, strings.Join(unknown, ", "))
	}
	return nil
}

// Entries implements Form.
func (v *Values) Entries() []Entry {
	if v == nil {
		return nil
	}
	entries := make([]Entry, 0, len(v.controls))
	for _, state := range v.controls {
		name := state.control.Name
		switch {
		case state.control.Checkable:
			if state.checked {
				entries = append(entries, Entry{Name: name, Value: state.control.CheckedValue})
			}
		case len(state.values) == 0:
			if !state.control.Multiple {
				entries = append(entries, Entry{Name: name})
			}
		default:
			for _, value := range state.values {
				entries = append(entries, Entry{Name: name, Value: value})
			}
		}
	}
	return entries
}

// Reset implements Form.
func (v *Values) Reset() {
	if v == nil {
		return
	}
	for _, state := range v.controls {
		state.values = append([]string(nil), state.control.Default...)
		state.checked = state.control.Checked
	}
}

// Snapshot returns the current values keyed by control name, suitable for
// prefilling rendered controls. Unchecked checkables are omitted.
func (v *Values) Snapshot() map[string][]string {
	if v == nil {
		return nil
	}
	out := make(map[string][]string, len(v.controls))
	for _, state := range v.controls {
		switch {
		case state.control.Checkable:
			if state.checked {
				out[state.control.Name] = []string{state.control.CheckedValue}
			}
		case len(state.values) > 0:
			out[state.control.Name] = append([]string(nil), state.values...)
		}
	}
	return out
}

func (v *Values) lookup(name string) (*controlState, error) {
	if v == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownControl, name)
	}
	idx, ok := v.index[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownControl, name)
	}
	return v.controls[idx], nil
}
