package snapshot

import (
	"bytes"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
	"golang.org/x/crypto/blake2b"

	"github.com/iotaledger/banksnapshot/packages/bank"
)

const (
	// FileFormatVersion is the version of the framing of snapshot files.
	FileFormatVersion uint16 = 1

	// fileMagic identifies snapshot files.
	fileMagic = "BNKS"

	// headerLength is the length of the magic, the format version, the slot and the body length.
	headerLength = len(fileMagic) + marshalutil.Uint16Size + marshalutil.Uint64Size + marshalutil.Uint32Size
)

// region File /////////////////////////////////////////////////////////////////////////////////////////////////////////

// File is an encoded snapshot together with the framing that is used to persist it on disk. The framing carries the
// slot of the snapshot and a checksum of its body.
type File struct {
	Slot bank.Slot
	Body []byte
}

// NewFile returns a File that frames the given encoded snapshot of the given slot.
func NewFile(slot bank.Slot, body []byte) *File {
	return &File{
		Slot: slot,
		Body: body,
	}
}

// FileFromBytes parses a File from its serialized version and verifies its checksum.
func FileFromBytes(data []byte) (file *File, err error) {
	if len(data) < headerLength+blake2b.Size256 {
		return nil, errors.Wrapf(ErrInvalidSnapshotFile, "file is too short (%d bytes)", len(data))
	}

	marshalUtil := marshalutil.New(data)
	magic, err := marshalUtil.ReadBytes(len(fileMagic))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to parse magic"), ErrInvalidSnapshotFile)
	}
	if string(magic) != fileMagic {
		return nil, errors.Wrapf(ErrInvalidSnapshotFile, "unknown magic %x", magic)
	}

	formatVersion, err := marshalUtil.ReadUint16()
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to parse format version"), ErrInvalidSnapshotFile)
	}
	if formatVersion != FileFormatVersion {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "file format version %d is not %d", formatVersion, FileFormatVersion)
	}

	file = new(File)
	if file.Slot, err = marshalUtil.ReadUint64(); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to parse slot"), ErrInvalidSnapshotFile)
	}
	bodyLength, err := marshalUtil.ReadUint32()
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to parse body length"), ErrInvalidSnapshotFile)
	}
	if uint64(len(data)) != uint64(headerLength)+uint64(bodyLength)+blake2b.Size256 {
		return nil, errors.Wrapf(ErrInvalidSnapshotFile, "body length %d does not match file length %d", bodyLength, len(data))
	}
	if file.Body, err = marshalUtil.ReadBytes(int(bodyLength)); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to parse body"), ErrInvalidSnapshotFile)
	}

	checksumOffset := marshalUtil.ReadOffset()
	checksum, err := marshalUtil.ReadBytes(blake2b.Size256)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to parse checksum"), ErrInvalidSnapshotFile)
	}
	if expected := blake2b.Sum256(data[:checksumOffset]); !bytes.Equal(checksum, expected[:]) {
		return nil, errors.Wrapf(ErrChecksumMismatch, "checksum of snapshot at slot %d does not match", file.Slot)
	}

	return file, nil
}

// ReadFile reads and verifies the File that is stored at the given path.
func ReadFile(fileName string) (file *File, err error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Errorf("failed to read snapshot file %s: %w", fileName, err)
	}

	if file, err = FileFromBytes(data); err != nil {
		return nil, errors.Wrapf(err, "failed to parse snapshot file %s", fileName)
	}

	return file, nil
}

// WriteFile writes the File to the given path.
func (f *File) WriteFile(fileName string) (err error) {
	if err = os.WriteFile(fileName, f.Bytes(), 0o644); err != nil {
		return errors.Errorf("failed to write snapshot file %s: %w", fileName, err)
	}

	return nil
}

// Bytes returns a serialized version of the File.
func (f *File) Bytes() []byte {
	marshalUtil := marshalutil.New(headerLength + len(f.Body) + blake2b.Size256)
	marshalUtil.
		WriteBytes([]byte(fileMagic)).
		WriteUint16(FileFormatVersion).
		WriteUint64(f.Slot).
		WriteUint32(uint32(len(f.Body))).
		WriteBytes(f.Body)

	checksum := blake2b.Sum256(marshalUtil.Bytes())

	return marshalUtil.WriteBytes(checksum[:]).Bytes()
}

// String returns a human-readable version of the File.
func (f *File) String() string {
	return stringify.Struct("File",
		stringify.StructField("Slot", f.Slot),
		stringify.StructField("BodySize", len(f.Body)),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
