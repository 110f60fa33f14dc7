package domain

import (
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
)

// Network is a registry of the equipment, terminals, connectivity nodes and feeders of one
// network model. It is not safe for concurrent mutation.
type Network struct {
	equipment map[string]ConductingEquipment
	terminals map[string]*Terminal
	nodes     map[string]*ConnectivityNode
	feeders   map[string]*Feeder
	nextNode  int
}

// NewNetwork creates an empty network.
func NewNetwork() *Network {
	return &Network{
		equipment: make(map[string]ConductingEquipment),
		terminals: make(map[string]*Terminal),
		nodes:     make(map[string]*ConnectivityNode),
		feeders:   make(map[string]*Feeder),
	}
}

// Add registers the equipment and its terminals.
func (n *Network) Add(ce ConductingEquipment) error {
	if _, ok := n.equipment[ce.MRID()]; ok {
		return errors.Wrapf(ErrDuplicateMRID, "equipment %q", ce.MRID())
	}
	for _, t := range ce.Core().Terminals() {
		if _, ok := n.terminals[t.MRID]; ok {
			return errors.Wrapf(ErrDuplicateMRID, "terminal %q", t.MRID)
		}
	}

	n.equipment[ce.MRID()] = ce
	for _, t := range ce.Core().Terminals() {
		n.terminals[t.MRID] = t
	}
	return nil
}

// AddFeeder registers a feeder.
func (n *Network) AddFeeder(f *Feeder) error {
	if _, ok := n.feeders[f.MRID]; ok {
		return errors.Wrapf(ErrDuplicateMRID, "feeder %q", f.MRID)
	}
	n.feeders[f.MRID] = f
	return nil
}

// Connect attaches the terminal to the named connectivity node, creating the node if needed.
// A terminal already attached elsewhere is moved.
func (n *Network) Connect(t *Terminal, nodeID string) *ConnectivityNode {
	cn, ok := n.nodes[nodeID]
	if !ok {
		cn = &ConnectivityNode{MRID: nodeID}
		n.nodes[nodeID] = cn
	}
	if t.ConnectivityNode == cn {
		return cn
	}
	if t.ConnectivityNode != nil {
		t.ConnectivityNode.remove(t)
	}
	cn.add(t)
	return cn
}

// ConnectTerminals joins two terminals on a shared node. If both are already attached to
// different nodes, the nodes are merged into the node of a.
func (n *Network) ConnectTerminals(a, b *Terminal) *ConnectivityNode {
	switch {
	case a.ConnectivityNode == nil && b.ConnectivityNode == nil:
		cn := n.Connect(a, n.generateNodeID())
		return n.Connect(b, cn.MRID)
	case a.ConnectivityNode == nil:
		return n.Connect(a, b.ConnectivityNode.MRID)
	case b.ConnectivityNode == nil || a.ConnectivityNode == b.ConnectivityNode:
		return n.Connect(b, a.ConnectivityNode.MRID)
	}

	target, merged := a.ConnectivityNode, b.ConnectivityNode
	for _, t := range append([]*Terminal(nil), merged.Terminals...) {
		n.Connect(t, target.MRID)
	}
	delete(n.nodes, merged.MRID)
	return target
}

func (n *Network) generateNodeID() string {
	for {
		n.nextNode++
		id := fmt.Sprintf("cn%d", n.nextNode)
		if _, taken := n.nodes[id]; !taken {
			return id
		}
	}
}

// Equipment looks up equipment by mRID.
func (n *Network) Equipment(mrid string) (ConductingEquipment, error) {
	ce, ok := n.equipment[mrid]
	if !ok {
		return nil, errors.Wrapf(ErrEquipmentNotFound, "%q", mrid)
	}
	return ce, nil
}

// Terminal looks up a terminal by mRID.
func (n *Network) Terminal(mrid string) (*Terminal, error) {
	t, ok := n.terminals[mrid]
	if !ok {
		return nil, errors.Wrapf(ErrTerminalNotFound, "%q", mrid)
	}
	return t, nil
}

// Feeder looks up a feeder by mRID.
func (n *Network) Feeder(mrid string) (*Feeder, error) {
	f, ok := n.feeders[mrid]
	if !ok {
		return nil, errors.Wrapf(ErrFeederNotFound, "%q", mrid)
	}
	return f, nil
}

// Node looks up a connectivity node by mRID.
func (n *Network) Node(mrid string) (*ConnectivityNode, bool) {
	cn, ok := n.nodes[mrid]
	return cn, ok
}

// AllEquipment lists the equipment ordered by mRID.
func (n *Network) AllEquipment() []ConductingEquipment {
	out := make([]ConductingEquipment, 0, len(n.equipment))
	for _, ce := range n.equipment {
		out = append(out, ce)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MRID() < out[j].MRID() })
	return out
}

// Terminals lists the terminals ordered by mRID.
func (n *Network) Terminals() []*Terminal {
	out := make([]*Terminal, 0, len(n.terminals))
	for _, t := range n.terminals {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MRID < out[j].MRID })
	return out
}

// Feeders lists the feeders ordered by mRID.
func (n *Network) Feeders() []*Feeder {
	out := make([]*Feeder, 0, len(n.feeders))
	for _, f := range n.feeders {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MRID < out[j].MRID })
	return out
}

// Len returns the number of pieces of equipment.
func (n *Network) Len() int { return len(n.equipment) }
