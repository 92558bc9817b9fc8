package bank

import (
	"github.com/iotaledger/hive.go/stringify"
)

// MaxBurnPercent is the upper bound of the burn percentage of the fee rate governor and the rent.
const MaxBurnPercent = 100

// FeeCalculator contains the fee parameters that were in effect when a blockhash was registered.
type FeeCalculator struct {
	LamportsPerSignature uint64
}

// FeeRateGovernor contains the parameters that drive the dynamic signature fee.
type FeeRateGovernor struct {
	LamportsPerSignature       uint64
	TargetLamportsPerSignature uint64
	TargetSignaturesPerSlot    uint64
	MinLamportsPerSignature    uint64
	MaxLamportsPerSignature    uint64
	BurnPercent                uint8
}

// Inflation contains the parameters of the inflation curve.
type Inflation struct {
	Initial        float64
	Terminal       float64
	Taper          float64
	Foundation     float64
	FoundationTerm float64
}

// Rent contains the rent parameters.
type Rent struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  float64
	BurnPercent         uint8
}

// RentCollector contains the rent parameters and the epoch schedule at which they were captured.
type RentCollector struct {
	Epoch         Epoch
	EpochSchedule EpochSchedule
	SlotsPerYear  float64
	Rent          Rent
}

// EpochSchedule describes the length of epochs and the warm-up period.
type EpochSchedule struct {
	SlotsPerEpoch            uint64
	LeaderScheduleSlotOffset uint64
	Warmup                   bool
	FirstNormalEpoch         Epoch
	FirstNormalSlot          Slot
}

// String returns a human-readable version of the FeeRateGovernor.
func (f FeeRateGovernor) String() string {
	return stringify.Struct("FeeRateGovernor",
		stringify.StructField("LamportsPerSignature", f.LamportsPerSignature),
		stringify.StructField("TargetLamportsPerSignature", f.TargetLamportsPerSignature),
		stringify.StructField("TargetSignaturesPerSlot", f.TargetSignaturesPerSlot),
		stringify.StructField("MinLamportsPerSignature", f.MinLamportsPerSignature),
		stringify.StructField("MaxLamportsPerSignature", f.MaxLamportsPerSignature),
		stringify.StructField("BurnPercent", f.BurnPercent),
	)
}

// String returns a human-readable version of the RentCollector.
func (r RentCollector) String() string {
	return stringify.Struct("RentCollector",
		stringify.StructField("Epoch", r.Epoch),
		stringify.StructField("SlotsPerYear", r.SlotsPerYear),
		stringify.StructField("LamportsPerByteYear", r.Rent.LamportsPerByteYear),
		stringify.StructField("ExemptionThreshold", r.Rent.ExemptionThreshold),
		stringify.StructField("BurnPercent", r.Rent.BurnPercent),
	)
}
