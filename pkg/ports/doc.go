/*
Package ports defines the driven ports (interfaces) around the traversal engine.

These interfaces decouple tracing from where networks come from and where traced outcomes go,
so the same traces run against files, memory or Redis.

# Key Interfaces

  - NetworkLoader: Builds a domain.Network from a description (e.g., YAML).
  - SnapshotStore: Persists and restores the traced state of every terminal.
  - DistributedLocker: Serializes mutating traces of one scenario across replicas.
*/
package ports
