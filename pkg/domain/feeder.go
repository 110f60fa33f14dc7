package domain

// Feeder is an equipment container fed from a head terminal. Membership is tracked separately
// for the normal and current scenarios, on both the feeder and the equipment.
type Feeder struct {
	MRID         string
	Name         string
	HeadTerminal *Terminal

	normalEquipment  []ConductingEquipment
	currentEquipment []ConductingEquipment
}

// NewFeeder creates an empty feeder.
func NewFeeder(mrid string, head *Terminal) *Feeder {
	return &Feeder{MRID: mrid, HeadTerminal: head}
}

// NormalEquipment returns the normal members in insertion order.
func (f *Feeder) NormalEquipment() []ConductingEquipment { return f.normalEquipment }

// CurrentEquipment returns the current members in insertion order.
func (f *Feeder) CurrentEquipment() []ConductingEquipment { return f.currentEquipment }

// AddNormalEquipment links ce and f in the normal scenario. It returns false if already linked.
func (f *Feeder) AddNormalEquipment(ce ConductingEquipment) bool {
	core := ce.Core()
	if !addMember(&f.normalEquipment, ce) {
		return false
	}
	addFeeder(&core.normalFeeders, f)
	return true
}

// AddCurrentEquipment links ce and f in the current scenario. It returns false if already linked.
func (f *Feeder) AddCurrentEquipment(ce ConductingEquipment) bool {
	core := ce.Core()
	if !addMember(&f.currentEquipment, ce) {
		return false
	}
	addFeeder(&core.currentFeeders, f)
	return true
}

// RemoveNormalEquipment unlinks ce and f in the normal scenario.
func (f *Feeder) RemoveNormalEquipment(ce ConductingEquipment) bool {
	if !removeMember(&f.normalEquipment, ce) {
		return false
	}
	removeFeeder(&ce.Core().normalFeeders, f)
	return true
}

// RemoveCurrentEquipment unlinks ce and f in the current scenario.
func (f *Feeder) RemoveCurrentEquipment(ce ConductingEquipment) bool {
	if !removeMember(&f.currentEquipment, ce) {
		return false
	}
	removeFeeder(&ce.Core().currentFeeders, f)
	return true
}

func addMember(list *[]ConductingEquipment, ce ConductingEquipment) bool {
	for _, m := range *list {
		if m == ce {
			return false
		}
	}
	*list = append(*list, ce)
	return true
}

func removeMember(list *[]ConductingEquipment, ce ConductingEquipment) bool {
	for i, m := range *list {
		if m == ce {
			*list = append((*list)[:i:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}

func addFeeder(list *[]*Feeder, f *Feeder) {
	for _, m := range *list {
		if m == f {
			return
		}
	}
	*list = append(*list, f)
}

func removeFeeder(list *[]*Feeder, f *Feeder) {
	for i, m := range *list {
		if m == f {
			*list = append((*list)[:i:i], (*list)[i+1:]...)
			return
		}
	}
}
