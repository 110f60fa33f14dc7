package dto

// NetworkFile is the top level of a YAML network description.
type NetworkFile struct {
	Equipment []map[string]any    `yaml:"equipment"`
	Nodes     map[string][]string `yaml:"nodes"`
	Chains    [][]string          `yaml:"chains"`
	Feeders   []FeederSpec        `yaml:"feeders"`
}

// EquipmentSpec is one equipment entry. Entries are decoded loosely from YAML first and then
// through mapstructure, so unknown keys are reported rather than silently dropped.
type EquipmentSpec struct {
	ID        string `mapstructure:"id"`
	Kind      string `mapstructure:"kind"`
	Name      string `mapstructure:"name"`
	Phases    string `mapstructure:"phases"`
	Terminals int    `mapstructure:"terminals"`

	// Switch state. A phase of "ALL" opens every phase.
	NormallyOpen  []string `mapstructure:"normally_open"`
	CurrentlyOpen []string `mapstructure:"currently_open"`
	InService     *bool    `mapstructure:"in_service"`

	// Line segments, clamps and cuts.
	Length float64 `mapstructure:"length"`
	Line   string  `mapstructure:"line"`
	At     float64 `mapstructure:"at"`

	// TerminalPhases overrides the nominal phases of individual terminals, keyed by sequence number.
	TerminalPhases map[int]string `mapstructure:"terminal_phases"`
}

// FeederSpec names a feeder and the terminal reference of its head.
type FeederSpec struct {
	ID   string `yaml:"id"`
	Head string `yaml:"head"`
}
