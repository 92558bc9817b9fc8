package bank

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidKeyLength is returned when a key or hash does not have the expected fixed width.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrBankFrozen is returned when a frozen Bank is asked to mutate its state.
	ErrBankFrozen = errors.New("bank is frozen")

	// ErrIncompleteFields is returned when a Bank is constructed from Fields that lack a required component.
	ErrIncompleteFields = errors.New("incomplete bank fields")

	// ErrParentSlotAfterSlot is returned when the parent slot of a non-root bank lies after its own slot.
	ErrParentSlotAfterSlot = errors.New("parent slot lies after slot")

	// ErrQueueCapacityExceeded is returned when a BlockhashQueue holds more than max age + 1 entries.
	ErrQueueCapacityExceeded = errors.New("blockhash queue exceeds its capacity")

	// ErrInvalidVoteState is returned when the data of a vote account can not be parsed.
	ErrInvalidVoteState = errors.New("invalid vote state")
)
