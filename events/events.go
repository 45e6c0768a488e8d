// Package events replays parser event streams into green trees.
//
// A parser drives a green.Builder directly; this package exists for streams
// that arrive as data, such as recorded parses and hand-written scripts,
// where an unbalanced sequence is an input error rather than a bug.
package events

import (
	"errors"
	"fmt"

	"github.com/arjunmahishi/cst/green"
)

// Op is the type of a builder event.
type Op uint8

const (
	OpStart Op = iota
	OpToken
	OpFinish
	OpCheckpoint
	OpStartAt
)

func (o Op) String() string {
	switch o {
	case OpStart:
		return "start"
	case OpToken:
		return "token"
	case OpFinish:
		return "finish"
	case OpCheckpoint:
		return "checkpoint"
	case OpStartAt:
		return "start_at"
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Event is a single builder call. Label names a checkpoint for
// OpCheckpoint and OpStartAt.
type Event struct {
	Op    Op
	Kind  green.Kind
	Text  string
	Label string
}

// ErrUnbalanced is returned when finish events do not match start events.
var ErrUnbalanced = errors.New("unbalanced events")

// Replay feeds evs into b and returns the finished root. The stream is
// validated before any call reaches the builder, so malformed input yields
// an error instead of a builder panic.
func Replay(b *green.Builder, evs []Event) (*green.Node, error) {
	if err := Validate(evs); err != nil {
		return nil, err
	}
	checkpoints := make(map[string]green.Checkpoint)
	for _, ev := range evs {
		switch ev.Op {
		case OpStart:
			b.StartNode(ev.Kind)
		case OpToken:
			b.Token(ev.Kind, ev.Text)
		case OpFinish:
			b.FinishNode()
		case OpCheckpoint:
			checkpoints[ev.Label] = b.Checkpoint()
		case OpStartAt:
			b.StartNodeAt(checkpoints[ev.Label], ev.Kind)
		}
	}
	return b.Finish(), nil
}

// Validate checks that evs describe exactly one balanced root node and that
// every checkpoint is used inside the node it was taken in.
func Validate(evs []Event) error {
	type mark struct {
		frame int // serial number of the node the checkpoint was taken in
		pos   int
	}

	var (
		serial int
		frames = []int{0} // serial numbers of the open nodes; 0 is the top level
		counts = []int{0} // elements emitted so far in each open node
		marks  = make(map[string]mark)
	)
	push := func(children int) {
		serial++
		frames = append(frames, serial)
		counts = append(counts, children)
	}
	for i, ev := range evs {
		top := len(frames) - 1
		switch ev.Op {
		case OpStart:
			push(0)
		case OpToken:
			if top == 0 {
				return fmt.Errorf("event %d: token %q outside of any node", i, ev.Text)
			}
			counts[top]++
		case OpFinish:
			if top == 0 {
				return fmt.Errorf("event %d: finish without matching start: %w", i, ErrUnbalanced)
			}
			frames = frames[:top]
			counts = counts[:top]
			counts[top-1]++
		case OpCheckpoint:
			marks[ev.Label] = mark{frame: frames[top], pos: counts[top]}
		case OpStartAt:
			m, ok := marks[ev.Label]
			if !ok {
				return fmt.Errorf("event %d: unknown checkpoint %q", i, ev.Label)
			}
			if m.frame != frames[top] || m.pos > counts[top] {
				return fmt.Errorf("event %d: checkpoint %q used outside the node it was taken in", i, ev.Label)
			}
			adopted := counts[top] - m.pos
			counts[top] = m.pos
			push(adopted)
		default:
			return fmt.Errorf("event %d: unknown op %s", i, ev.Op)
		}
	}
	if open := len(frames) - 1; open != 0 {
		return fmt.Errorf("%d node(s) left open: %w", open, ErrUnbalanced)
	}
	if counts[0] != 1 {
		return fmt.Errorf("expected exactly one root node, found %d", counts[0])
	}
	return nil
}
