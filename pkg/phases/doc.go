/*
Package phases contains the phase identity types of the network model and the packed
phase/direction state stored on every terminal.

# Key Types

  - SinglePhaseKind: a single phase identity (A, B, C, N, X, Y).
  - PhaseCode: an ordered combination of single phases modelled on a terminal.
  - PhaseDirection: the IN/OUT lattice describing how a traced phase flows through a terminal.
  - PhaseStatus: one packed 32-bit status (one byte per nominal slot) behind a validated API.
  - TracedPhases: the normal and current PhaseStatus of a terminal.

# Bit Layout

A status holds one byte per nominal slot, in the fixed order A/X, B/Y, C, N. Each byte is split
into four 2-bit sub-fields, one per candidate actual phase (A, B, C, N from the low bits up), and
holds the PhaseDirection of that actual phase. At most one sub-field per byte may be non-zero:

	byte:     3        2        1        0
	slot:     N        C        B/Y      A/X
	bits:  NNCCBBAA NNCCBBAA NNCCBBAA NNCCBBAA

The layout is stable so that raw statuses persisted by earlier versions decode unchanged.
*/
package phases
