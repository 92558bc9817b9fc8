package snapshot

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrRangeOverflow is returned when a value of the ledger state can not be represented in the width of its wire
	// field.
	ErrRangeOverflow = errors.New("value out of representable range")

	// ErrMalformedSnapshot is returned when an encoded snapshot violates the structure of the schema: a required field
	// is missing, a key has the wrong length, a keyed collection contains a key twice or a value lies outside of the
	// domain of its field.
	ErrMalformedSnapshot = errors.New("malformed snapshot")

	// ErrInvariantViolation is returned when an encoded snapshot is well-formed but violates an invariant of the
	// ledger state.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrUnsupportedVersion is returned when an encoded snapshot uses a schema version that is newer than the one this
	// package implements.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")

	// ErrBankNotFrozen is returned when the state of a Bank that was not frozen is supposed to be captured.
	ErrBankNotFrozen = errors.New("bank is not frozen")

	// ErrInvalidSnapshotFile is returned when a snapshot file can not be parsed.
	ErrInvalidSnapshotFile = errors.New("invalid snapshot file")

	// ErrChecksumMismatch is returned when the checksum of a snapshot file does not match its content.
	ErrChecksumMismatch = errors.New("snapshot file checksum mismatch")
)

// malformed returns an ErrMalformedSnapshot with the given details.
func malformed(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedSnapshot, format, args...)
}

// missing returns an ErrMalformedSnapshot for a required field that is absent.
func missing(fieldName string) error {
	return malformed("missing required field %s", fieldName)
}
