package domain

import "github.com/aretw0/gridwalk/pkg/phases"

// Terminal is a connection point of a piece of conducting equipment.
type Terminal struct {
	MRID           string
	SequenceNumber int

	// Phases are the nominal phases modelled on the terminal.
	Phases phases.PhaseCode

	Equipment        ConductingEquipment
	ConnectivityNode *ConnectivityNode

	// TracedPhases holds the actual phases derived by phase traces.
	TracedPhases phases.TracedPhases

	NormalFeederDirection  FeederDirection
	CurrentFeederDirection FeederDirection
}

func (t *Terminal) String() string { return t.MRID }

// OtherTerminals returns the terminals of the same equipment, excluding t.
func (t *Terminal) OtherTerminals() []*Terminal {
	if t.Equipment == nil {
		return nil
	}
	all := t.Equipment.Core().Terminals()
	others := make([]*Terminal, 0, len(all))
	for _, o := range all {
		if o != t {
			others = append(others, o)
		}
	}
	return others
}

// ConnectedTerminals returns the other terminals on t's connectivity node.
func (t *Terminal) ConnectedTerminals() []*Terminal {
	if t.ConnectivityNode == nil {
		return nil
	}
	out := make([]*Terminal, 0, len(t.ConnectivityNode.Terminals))
	for _, o := range t.ConnectivityNode.Terminals {
		if o != t {
			out = append(out, o)
		}
	}
	return out
}

// ConnectivityNode is a zero-impedance junction joining terminals.
type ConnectivityNode struct {
	MRID string

	// Terminals are kept in the order they were connected.
	Terminals []*Terminal
}

func (cn *ConnectivityNode) add(t *Terminal) {
	for _, existing := range cn.Terminals {
		if existing == t {
			return
		}
	}
	cn.Terminals = append(cn.Terminals, t)
	t.ConnectivityNode = cn
}

func (cn *ConnectivityNode) remove(t *Terminal) {
	for i, existing := range cn.Terminals {
		if existing == t {
			cn.Terminals = append(cn.Terminals[:i:i], cn.Terminals[i+1:]...)
			t.ConnectivityNode = nil
			return
		}
	}
}
