package interp

import (
	"github.com/mattmikolay/rapture/lang"
	"github.com/mattmikolay/rapture/value"
)

// Flow is the way control leaves a statement.
type Flow int

const (
	FlowNormal Flow = iota // normal
	FlowReturn             // return
	FlowExit               // exit
)

// Outcome is the control-flow result of executing a statement. A Return
// carries its value (nil when "return" had no operand) and both Return and
// Exit carry the position of the statement that raised them, so an outcome
// that escapes its boundary can be reported there.
type Outcome struct {
	Value value.Value
	Pos   lang.Position
	Flow  Flow
}

var normal = Outcome{}

func returned(v value.Value, pos lang.Position) Outcome {
	return Outcome{Flow: FlowReturn, Value: v, Pos: pos}
}

func exited(pos lang.Position) Outcome {
	return Outcome{Flow: FlowExit, Pos: pos}
}

// escaped converts an outcome that reached the top of execution into the
// error describing its illegal use.
func escaped(out Outcome) error {
	switch out.Flow {
	case FlowReturn:
		return ErrIllegalReturn.WithPosition(out.Pos)
	case FlowExit:
		return ErrIllegalExit.WithPosition(out.Pos)
	default:
		return nil
	}
}
