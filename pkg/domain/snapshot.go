package domain

import "github.com/cockroachdb/errors"

// TerminalState is the traced outcome stored for one terminal: the raw packed phase statuses
// and the feeder directions of both scenarios.
type TerminalState struct {
	TerminalID       string          `json:"terminal_id"`
	NormalPhases     uint32          `json:"normal_phases"`
	CurrentPhases    uint32          `json:"current_phases"`
	NormalDirection  FeederDirection `json:"normal_direction"`
	CurrentDirection FeederDirection `json:"current_direction"`
}

// Snapshot captures the traced outcome of every terminal, ordered by terminal mRID.
func (n *Network) Snapshot() []TerminalState {
	terminals := n.Terminals()
	states := make([]TerminalState, 0, len(terminals))
	for _, t := range terminals {
		states = append(states, TerminalState{
			TerminalID:       t.MRID,
			NormalPhases:     t.TracedPhases.Normal().Raw(),
			CurrentPhases:    t.TracedPhases.Current().Raw(),
			NormalDirection:  t.NormalFeederDirection,
			CurrentDirection: t.CurrentFeederDirection,
		})
	}
	return states
}

// Restore applies a snapshot. Nothing is applied if any terminal is unknown.
func (n *Network) Restore(states []TerminalState) error {
	resolved := make([]*Terminal, len(states))
	for i, s := range states {
		t, ok := n.terminals[s.TerminalID]
		if !ok {
			return errors.Wrapf(ErrTerminalNotFound, "restoring %q", s.TerminalID)
		}
		resolved[i] = t
	}

	for i, s := range states {
		t := resolved[i]
		t.TracedPhases.Normal().Restore(s.NormalPhases)
		t.TracedPhases.Current().Restore(s.CurrentPhases)
		t.NormalFeederDirection = s.NormalDirection
		t.CurrentFeederDirection = s.CurrentDirection
	}
	return nil
}
