package transition

import (
	"errors"
	"fmt"
)

var ErrInvalidAction = errors.New("invalid action")

// Type is the kind of an arc-standard transition.
type Type byte

const (
	SHIFT Type = iota
	LEFT
	RIGHT
)

func (t Type) String() string {
	switch t {
	case SHIFT:
		return "SH"
	case LEFT:
		return "LA"
	case RIGHT:
		return "RA"
	}
	return fmt.Sprintf("Type(%d)", byte(t))
}

// Action is a decoded transition. Label is -1 for SHIFT.
//
// The flat integer form handed to classifiers packs type and label into
// one id: SHIFT is 0, LEFT(l) is 1+2l and RIGHT(l) is 2+2l.
type Action struct {
	Type  Type
	Label int
}

func Shift() Action {
	return Action{SHIFT, -1}
}

func Left(label int) Action {
	return Action{LEFT, label}
}

func Right(label int) Action {
	return Action{RIGHT, label}
}

// Encode packs the action into its flat id.
func (a Action) Encode() int {
	switch a.Type {
	case LEFT:
		return LeftAction(a.Label)
	case RIGHT:
		return RightAction(a.Label)
	}
	return ShiftAction()
}

func (a Action) String() string {
	if a.Type == SHIFT {
		return a.Type.String()
	}
	return fmt.Sprintf("%v-%d", a.Type, a.Label)
}

func ShiftAction() int {
	return 0
}

func LeftAction(label int) int {
	return 1 + label<<1
}

func RightAction(label int) int {
	return 2 + label<<1
}

// TypeOf extracts the transition type of a flat action id.
func TypeOf(action int) (Type, error) {
	switch {
	case action < 0:
		return SHIFT, fmt.Errorf("%w: %d", ErrInvalidAction, action)
	case action == 0:
		return SHIFT, nil
	case action&1 == 1:
		return LEFT, nil
	}
	return RIGHT, nil
}

// LabelOf extracts the label of a flat action id, -1 for SHIFT.
func LabelOf(action int) int {
	if action < 1 {
		return -1
	}
	return (action - 1) >> 1
}

// Decode unpacks a flat action id.
func Decode(action int) (Action, error) {
	t, err := TypeOf(action)
	if err != nil {
		return Action{}, err
	}
	return Action{t, LabelOf(action)}, nil
}

func NumActions(numLabels int) int {
	return 1 + 2*numLabels
}
