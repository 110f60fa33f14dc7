package domain

import "github.com/cockroachdb/errors"

// ErrEquipmentNotFound is returned when an mRID does not resolve to equipment in the network.
var ErrEquipmentNotFound = errors.New("equipment not found")

// ErrTerminalNotFound is returned when an mRID does not resolve to a terminal in the network.
var ErrTerminalNotFound = errors.New("terminal not found")

// ErrFeederNotFound is returned when an mRID does not resolve to a feeder in the network.
var ErrFeederNotFound = errors.New("feeder not found")

// ErrDuplicateMRID is returned when an object is added with an mRID already in use.
var ErrDuplicateMRID = errors.New("duplicate mRID")

// ErrSnapshotNotFound is returned when a snapshot cannot be found in the store.
var ErrSnapshotNotFound = errors.New("snapshot not found")
