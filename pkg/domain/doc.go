/*
Package domain contains the network model walked by the tracing engine.

It defines plain data holders for the electrical network graph: terminals, conducting
equipment, connectivity nodes and feeders. The package is kept free of traversal logic and I/O;
the tracing packages read and mutate these entities through the state operators.

# Key Entities

  - Terminal: a connection point of a piece of equipment. Carries the per-scenario traced
    phases and feeder direction derived by traces.
  - ConductingEquipment: anything with terminals (sources, switches, line segments, busbars...).
  - ConnectivityNode: a zero-impedance junction joining terminals.
  - Feeder: an equipment container with normal and current membership.
  - Network: a registry of all the above, keyed by mRID.

# Scenarios

Every stateful field comes in pairs: "normal" describes the network as designed, "current"
describes it as switched. The two are never written together.
*/
package domain
