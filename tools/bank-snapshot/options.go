package main

import (
	"github.com/iotaledger/banksnapshot/packages/bank"
)

const (
	// defaultFileName is the name of the generated snapshot file.
	defaultFileName = "bank.snapshot"

	// defaultSlots is the number of slots that the sample chain is advanced by.
	defaultSlots = 21

	// defaultCreationTime is the genesis creation time of the sample chain (2020-03-16T14:29:00Z).
	defaultCreationTime bank.UnixTimestamp = 1584368940
)

// defaultSeed is the seed that the keys of the sample chain are derived from.
// 7R1itJx5hVuo9w9hjg5cwKFmek4HMSoBDgJZN8hKGxih
var defaultSeed = []byte{
	95, 76, 224, 164, 168, 80, 141, 174, 133, 77, 153, 100, 4, 202, 113, 104,
	71, 130, 88, 200, 46, 56, 243, 121, 216, 236, 70, 146, 234, 158, 206, 230,
}

// hardForkSlots are the slots at which the sample chain registers a hard fork.
var hardForkSlots = []bank.Slot{10, 20}

// config contains the parameters of a run of the tool.
type config struct {
	FileName     string
	Slots        uint64
	Seed         []byte
	CreationTime bank.UnixTimestamp
	Diagnose     bool
	Metrics      bool
	ArchiveDir   string
}
