package wire

import (
	"math"

	"github.com/cockroachdb/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// ErrInvalidWireData is returned when a record violates the protobuf wire format.
var ErrInvalidWireData = errors.New("invalid wire data")

// message is implemented by every record of the schema.
type message interface {
	// appendTo appends the wire representation of the record to the given buffer.
	appendTo(buffer []byte) []byte

	// unmarshal parses the record from its wire representation.
	unmarshal(data []byte) error
}

// region marshal helpers //////////////////////////////////////////////////////////////////////////////////////////////

func appendVarint(buffer []byte, number protowire.Number, value uint64) []byte {
	if value == 0 {
		return buffer
	}
	buffer = protowire.AppendTag(buffer, number, protowire.VarintType)

	return protowire.AppendVarint(buffer, value)
}

func appendOptionalVarint(buffer []byte, number protowire.Number, value *uint64) []byte {
	if value == nil {
		return buffer
	}
	buffer = protowire.AppendTag(buffer, number, protowire.VarintType)

	return protowire.AppendVarint(buffer, *value)
}

func appendOptionalUint32(buffer []byte, number protowire.Number, value *uint32) []byte {
	if value == nil {
		return buffer
	}
	buffer = protowire.AppendTag(buffer, number, protowire.VarintType)

	return protowire.AppendVarint(buffer, uint64(*value))
}

func appendInt64(buffer []byte, number protowire.Number, value int64) []byte {
	return appendVarint(buffer, number, uint64(value))
}

func appendBool(buffer []byte, number protowire.Number, value bool) []byte {
	return appendVarint(buffer, number, protowire.EncodeBool(value))
}

func appendDouble(buffer []byte, number protowire.Number, value float64) []byte {
	bits := math.Float64bits(value)
	if bits == 0 {
		return buffer
	}
	buffer = protowire.AppendTag(buffer, number, protowire.Fixed64Type)

	return protowire.AppendFixed64(buffer, bits)
}

func appendBytes(buffer []byte, number protowire.Number, value []byte) []byte {
	if len(value) == 0 {
		return buffer
	}
	buffer = protowire.AppendTag(buffer, number, protowire.BytesType)

	return protowire.AppendBytes(buffer, value)
}

func appendOptionalBytes(buffer []byte, number protowire.Number, value []byte) []byte {
	if value == nil {
		return buffer
	}
	buffer = protowire.AppendTag(buffer, number, protowire.BytesType)

	return protowire.AppendBytes(buffer, value)
}

func appendPackedVarints(buffer []byte, number protowire.Number, values []uint64) []byte {
	if len(values) == 0 {
		return buffer
	}

	var packed []byte
	for _, value := range values {
		packed = protowire.AppendVarint(packed, value)
	}
	buffer = protowire.AppendTag(buffer, number, protowire.BytesType)

	return protowire.AppendBytes(buffer, packed)
}

func appendMessage(buffer []byte, number protowire.Number, value message) []byte {
	buffer = protowire.AppendTag(buffer, number, protowire.BytesType)

	return protowire.AppendBytes(buffer, value.appendTo(nil))
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region field ////////////////////////////////////////////////////////////////////////////////////////////////////////

// field is a single field of a record that is being parsed. Its data starts right behind the tag.
type field struct {
	number   protowire.Number
	wireType protowire.Type
	data     []byte
}

// walkFields calls the consumer for every field of the given record. The consumer returns the amount of bytes that it
// consumed from the field data.
func walkFields(data []byte, consumer func(f field) (consumed int, err error)) error {
	for len(data) > 0 {
		number, wireType, tagLength := protowire.ConsumeTag(data)
		if tagLength < 0 {
			return errors.Wrapf(ErrInvalidWireData, "failed to parse tag: %s", protowire.ParseError(tagLength))
		}
		data = data[tagLength:]

		consumed, err := consumer(field{number: number, wireType: wireType, data: data})
		if err != nil {
			return err
		}
		data = data[consumed:]
	}

	return nil
}

// is returns true if the field has the given number and wire type. A known number with an unexpected wire type is
// treated like an unknown field.
func (f field) is(number protowire.Number, wireType protowire.Type) bool {
	return f.number == number && f.wireType == wireType
}

func (f field) skip() (int, error) {
	length := protowire.ConsumeFieldValue(f.number, f.wireType, f.data)
	if length < 0 {
		return 0, f.parseError(length)
	}

	return length, nil
}

func (f field) consumeVarint(target *uint64) (int, error) {
	value, length := protowire.ConsumeVarint(f.data)
	if length < 0 {
		return 0, f.parseError(length)
	}
	*target = value

	return length, nil
}

func (f field) consumeOptionalVarint(target **uint64) (int, error) {
	var value uint64
	length, err := f.consumeVarint(&value)
	if err != nil {
		return 0, err
	}
	*target = &value

	return length, nil
}

func (f field) consumeUint32(target *uint32) (int, error) {
	var value uint64
	length, err := f.consumeVarint(&value)
	if err != nil {
		return 0, err
	}
	if value > math.MaxUint32 {
		return 0, errors.Wrapf(ErrInvalidWireData, "field %d: value %d overflows uint32", f.number, value)
	}
	*target = uint32(value)

	return length, nil
}

func (f field) consumeOptionalUint32(target **uint32) (int, error) {
	var value uint32
	length, err := f.consumeUint32(&value)
	if err != nil {
		return 0, err
	}
	*target = &value

	return length, nil
}

func (f field) consumeInt64(target *int64) (int, error) {
	var value uint64
	length, err := f.consumeVarint(&value)
	if err != nil {
		return 0, err
	}
	*target = int64(value)

	return length, nil
}

func (f field) consumeBool(target *bool) (int, error) {
	var value uint64
	length, err := f.consumeVarint(&value)
	if err != nil {
		return 0, err
	}
	*target = protowire.DecodeBool(value)

	return length, nil
}

func (f field) consumeDouble(target *float64) (int, error) {
	value, length := protowire.ConsumeFixed64(f.data)
	if length < 0 {
		return 0, f.parseError(length)
	}
	*target = math.Float64frombits(value)

	return length, nil
}

// consumeBytes copies the bytes of the field into a new, non-nil slice.
func (f field) consumeBytes(target *[]byte) (int, error) {
	value, length := protowire.ConsumeBytes(f.data)
	if length < 0 {
		return 0, f.parseError(length)
	}
	*target = append(make([]byte, 0, len(value)), value...)

	return length, nil
}

// consumeVarints accepts both the packed and the unpacked encoding of a repeated varint field.
func (f field) consumeVarints(target *[]uint64) (int, error) {
	if f.wireType == protowire.VarintType {
		var value uint64
		length, err := f.consumeVarint(&value)
		if err != nil {
			return 0, err
		}
		*target = append(*target, value)

		return length, nil
	}

	packed, length := protowire.ConsumeBytes(f.data)
	if length < 0 {
		return 0, f.parseError(length)
	}
	for len(packed) > 0 {
		value, valueLength := protowire.ConsumeVarint(packed)
		if valueLength < 0 {
			return 0, f.parseError(valueLength)
		}
		*target = append(*target, value)
		packed = packed[valueLength:]
	}

	return length, nil
}

func (f field) consumeMessage(target message) (int, error) {
	value, length := protowire.ConsumeBytes(f.data)
	if length < 0 {
		return 0, f.parseError(length)
	}
	if err := target.unmarshal(value); err != nil {
		return 0, errors.Wrapf(err, "field %d", f.number)
	}

	return length, nil
}

func (f field) parseError(code int) error {
	return errors.Wrapf(ErrInvalidWireData, "field %d: %s", f.number, protowire.ParseError(code))
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
