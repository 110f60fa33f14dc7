package conditions

import (
	"slices"

	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/networktrace"
	"github.com/aretw0/gridwalk/pkg/networktrace/operators"
	"github.com/aretw0/gridwalk/pkg/traversal"
)

// DirectionCondition queues only the hops heading in a feeder direction.
//
// A hop through equipment must arrive at a terminal facing the direction. A hop across a node
// must arrive at a terminal facing back, the complement of the direction. A hop along a line
// segment looks ahead along the line: clamp terminals face off the line and are skipped, and a
// cut that does not face back is looked past to the far side.
type DirectionCondition[D any] struct {
	direction domain.FeederDirection
	ops       operators.NetworkStateOperators
}

// NewDirectionCondition creates a condition for direction in the scenario of ops.
func NewDirectionCondition[D any](direction domain.FeederDirection, ops operators.NetworkStateOperators) *DirectionCondition[D] {
	return &DirectionCondition[D]{direction: direction, ops: ops}
}

// Direction returns the direction the condition follows.
func (c *DirectionCondition[D]) Direction() domain.FeederDirection { return c.direction }

func (c *DirectionCondition[D]) ShouldQueue(next networktrace.Step[D], _ *traversal.StepContext, _ networktrace.Step[D], _ *traversal.StepContext) bool {
	path := next.Path
	switch {
	case path.DidTraverseAcLineSegment():
		return c.alongSegment(path)
	case path.TracedInternally():
		return c.ops.Direction(path.ToTerminal).Has(c.direction)
	default:
		return c.ops.Direction(path.ToTerminal).Has(c.direction.Complement())
	}
}

func (c *DirectionCondition[D]) ShouldQueueStartItem(networktrace.Step[D]) bool { return true }

func (c *DirectionCondition[D]) alongSegment(path networktrace.Path) bool {
	seq := networktrace.SegmentSequence(path.TraversedAcLineSegment, c.ops)
	from, to := slices.Index(seq, path.FromTerminal), slices.Index(seq, path.ToTerminal)
	if from < 0 || to < 0 || from == to {
		return c.ops.Direction(path.ToTerminal).Has(c.direction)
	}
	heading := 1
	if to < from {
		heading = -1
	}

	for i := to; i >= 0 && i < len(seq); i += heading {
		t := seq[i]
		switch t.Equipment.Kind() {
		case domain.KindClamp:
			continue
		case domain.KindCut:
			if c.ops.Direction(t).Has(c.direction.Complement()) {
				return true
			}
			// Skip the far side of the cut and keep looking.
			i += heading
		default:
			return c.ops.Direction(t).Has(c.direction)
		}
	}
	return false
}
