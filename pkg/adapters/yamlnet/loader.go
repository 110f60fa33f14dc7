// Package yamlnet loads networks from YAML descriptions.
//
// A description lists equipment, then wires terminals with named nodes and chains:
//
//	equipment:
//	  - {id: src, kind: EnergySource, phases: ABC}
//	  - {id: cb, kind: Breaker, phases: ABC, normally_open: [ALL]}
//	  - {id: acls, kind: AcLineSegment, phases: ABC, length: 100}
//	  - {id: clamp, kind: Clamp, line: acls, at: 40}
//	  - {id: j, kind: Junction, phases: ABC, terminals: 2}
//	chains:
//	  - [src, cb, acls, j]
//	nodes:
//	  tap: [clamp, j:2]
//	feeders:
//	  - {id: f1, head: cb:2}
//
// Terminal references use the same "id" or "id:seq" form as pkg/dsl.
package yamlnet

import (
	"context"
	"os"
	"slices"
	"strings"

	"github.com/aretw0/gridwalk/internal/dto"
	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/dsl"
	"github.com/aretw0/gridwalk/pkg/phases"
	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDescription is returned for descriptions that parse but do not describe a network.
var ErrInvalidDescription = errors.New("invalid network description")

// Loader implements ports.NetworkLoader over a YAML document.
type Loader struct {
	data []byte
}

// NewLoader creates a loader over an in-memory document.
func NewLoader(data []byte) *Loader {
	return &Loader{data: data}
}

// NewFileLoader reads the document at path.
func NewFileLoader(path string) (*Loader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading network description %s", path)
	}
	return NewLoader(data), nil
}

// Load parses the document and builds the network it describes.
func (l *Loader) Load(ctx context.Context) (*domain.Network, error) {
	var file dto.NetworkFile
	if err := yaml.Unmarshal(l.data, &file); err != nil {
		return nil, errors.Wrap(err, "parsing network description")
	}

	specs := make([]dto.EquipmentSpec, 0, len(file.Equipment))
	for i, raw := range file.Equipment {
		spec, err := decodeEquipment(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "equipment #%d", i)
		}
		specs = append(specs, spec)
	}
	// Clamps and cuts reference their line, so they are added after everything else.
	slices.SortStableFunc(specs, func(a, b dto.EquipmentSpec) int {
		return waypointOrder(a) - waypointOrder(b)
	})

	b := dsl.New()
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := addEquipment(b, spec); err != nil {
			return nil, err
		}
	}

	for _, chain := range file.Chains {
		b.Chain(chain...)
	}
	nodeIDs := make([]string, 0, len(file.Nodes))
	for id := range file.Nodes {
		nodeIDs = append(nodeIDs, id)
	}
	slices.Sort(nodeIDs)
	for _, id := range nodeIDs {
		b.Node(id, file.Nodes[id]...)
	}
	for _, f := range file.Feeders {
		b.Feeder(f.ID, f.Head)
	}

	return b.Build()
}

func decodeEquipment(raw map[string]any) (dto.EquipmentSpec, error) {
	var spec dto.EquipmentSpec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &spec,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return spec, err
	}
	if err := dec.Decode(raw); err != nil {
		return spec, errors.Wrapf(ErrInvalidDescription, "%v", err)
	}
	if spec.ID == "" {
		return spec, errors.Wrap(ErrInvalidDescription, "missing id")
	}
	return spec, nil
}

func waypointOrder(spec dto.EquipmentSpec) int {
	if spec.Kind == domain.KindClamp.String() || spec.Kind == domain.KindCut.String() {
		return 1
	}
	return 0
}

func addEquipment(b *dsl.Builder, spec dto.EquipmentSpec) error {
	kind, ok := domain.ParseKind(spec.Kind)
	if !ok {
		return errors.Wrapf(ErrInvalidDescription, "%s: unknown kind %q", spec.ID, spec.Kind)
	}
	code := phases.PhaseCodeABC
	if spec.Phases != "" {
		if code, ok = phases.ParsePhaseCode(spec.Phases); !ok {
			return errors.Wrapf(ErrInvalidDescription, "%s: unknown phase code %q", spec.ID, spec.Phases)
		}
	}
	terminals := spec.Terminals
	switch {
	case terminals < 0:
		return errors.Wrapf(ErrInvalidDescription, "%s: negative terminal count %d", spec.ID, terminals)
	case terminals == 0:
		terminals = 2
	}

	var eb *dsl.EquipmentBuilder
	switch kind {
	case domain.KindEnergySource:
		eb = b.Source(spec.ID, code)
	case domain.KindJunction:
		eb = b.Junction(spec.ID, terminals, code)
	case domain.KindBusbarSection:
		eb = b.Busbar(spec.ID, code)
	case domain.KindEnergyConsumer:
		eb = b.Consumer(spec.ID, code)
	case domain.KindPowerTransformer:
		eb = b.Transformer(spec.ID, terminals, code)
	case domain.KindAcLineSegment:
		eb = b.Line(spec.ID, code).Length(spec.Length)
	case domain.KindClamp:
		eb = b.Clamp(spec.Line, spec.ID, spec.At)
	case domain.KindCut:
		eb = b.Cut(spec.Line, spec.ID, spec.At)
	default:
		eb = b.Switch(spec.ID, kind, code)
	}

	if spec.Name != "" {
		eb.Named(spec.Name)
	}
	if spec.InService != nil && !*spec.InService {
		eb.OutOfService()
	}
	for seq, name := range spec.TerminalPhases {
		tc, ok := phases.ParsePhaseCode(name)
		if !ok {
			return errors.Wrapf(ErrInvalidDescription, "%s: terminal %d: unknown phase code %q", spec.ID, seq, name)
		}
		eb.Phases(seq, tc)
	}

	if len(spec.NormallyOpen)+len(spec.CurrentlyOpen) > 0 && !kind.IsSwitch() {
		return errors.Wrapf(ErrInvalidDescription, "%s: a %s cannot be opened", spec.ID, kind)
	}
	for _, name := range spec.NormallyOpen {
		phase, err := openPhase(spec.ID, name)
		if err != nil {
			return err
		}
		eb.NormallyOpen(phase)
	}
	for _, name := range spec.CurrentlyOpen {
		phase, err := openPhase(spec.ID, name)
		if err != nil {
			return err
		}
		eb.CurrentlyOpen(phase)
	}
	return nil
}

func openPhase(id, name string) (phases.SinglePhaseKind, error) {
	if strings.EqualFold(name, "all") {
		return phases.NONE, nil
	}
	phase := phases.ParseSinglePhaseKind(name)
	if phase == phases.INVALID || phase == phases.NONE {
		return phase, errors.Wrapf(ErrInvalidDescription, "%s: unknown phase %q", id, name)
	}
	return phase, nil
}
