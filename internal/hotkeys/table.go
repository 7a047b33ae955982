// Package hotkeys defines the fixed global-hotkey scheme and the
// hotkey-id-to-action dispatch table.
package hotkeys

import "fmt"

// Kind discriminates the actions a hotkey can trigger.
type Kind int

const (
	// KindSwitch switches to a numbered desktop.
	KindSwitch Kind = iota
	// KindMove moves the active window to a numbered desktop.
	KindMove
	// KindSwitchPrevious returns to the previously active desktop.
	KindSwitchPrevious
	// KindPin pins the active window to all desktops.
	KindPin
)

// Action is what a hotkey resolves to. Desktop is meaningful only for
// KindSwitch and KindMove.
type Action struct {
	Kind    Kind
	Desktop int
}

func (a Action) String() string {
	switch a.Kind {
	case KindSwitch:
		return fmt.Sprintf("switch-to(%d)", a.Desktop)
	case KindMove:
		return fmt.Sprintf("move-to(%d)", a.Desktop)
	case KindSwitchPrevious:
		return "switch-to-previous"
	case KindPin:
		return "pin-active-window"
	default:
		return fmt.Sprintf("unknown(%d)", int(a.Kind))
	}
}

// Binding associates a hotkey id with a key sequence (xgbutil keybind
// grammar) and the action it triggers.
type Binding struct {
	ID       int
	Sequence string
	Action   Action
}

// Hotkey id layout. The scheme is fixed: Alt+1..9 and Alt+0 switch to
// desktops 1-10, Alt+Minus returns to the previous desktop,
// Alt+Shift+1..9/0 move the active window, Alt+Shift+Backtick pins it.
const (
	baseID     = 100
	previousID = 110
	pinID      = 121
)

// FixedBindings returns the full fixed binding scheme in registration
// order. IDs are contiguous from 100.
func FixedBindings() []Binding {
	bindings := make([]Binding, 0, 22)
	id := baseID

	// Alt+1..Alt+9 switch to desktops 1-9, Alt+0 to desktop 10. Alt is
	// mod1 in the keybind modifier grammar.
	for i := 1; i <= 9; i++ {
		bindings = append(bindings, Binding{
			ID:       id,
			Sequence: fmt.Sprintf("mod1-%d", i),
			Action:   Action{Kind: KindSwitch, Desktop: i},
		})
		id++
	}
	bindings = append(bindings, Binding{
		ID:       id,
		Sequence: "mod1-0",
		Action:   Action{Kind: KindSwitch, Desktop: 10},
	})
	id++

	bindings = append(bindings, Binding{
		ID:       id,
		Sequence: "mod1-minus",
		Action:   Action{Kind: KindSwitchPrevious},
	})
	id++

	// Alt+Shift+1..9/0 move the active window.
	for i := 1; i <= 9; i++ {
		bindings = append(bindings, Binding{
			ID:       id,
			Sequence: fmt.Sprintf("mod1-shift-%d", i),
			Action:   Action{Kind: KindMove, Desktop: i},
		})
		id++
	}
	bindings = append(bindings, Binding{
		ID:       id,
		Sequence: "mod1-shift-0",
		Action:   Action{Kind: KindMove, Desktop: 10},
	})
	id++

	bindings = append(bindings, Binding{
		ID:       id,
		Sequence: "mod1-shift-grave",
		Action:   Action{Kind: KindPin},
	})

	return bindings
}

// Table maps hotkey ids to actions. Built once at startup from whichever
// bindings registered successfully; immutable thereafter.
type Table struct {
	actions map[int]Action
}

// NewTable builds a dispatch table from the given bindings.
func NewTable(bindings []Binding) *Table {
	actions := make(map[int]Action, len(bindings))
	for _, b := range bindings {
		actions[b.ID] = b.Action
	}
	return &Table{actions: actions}
}

// Resolve looks up the action bound to a hotkey id. Pure lookup, no side
// effects; an unknown id reports ok=false and the caller ignores it.
func (t *Table) Resolve(id int) (Action, bool) {
	action, ok := t.actions[id]
	return action, ok
}

// Len returns how many bindings the table holds.
func (t *Table) Len() int {
	return len(t.actions)
}
