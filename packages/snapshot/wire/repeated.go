package wire

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// messagePointer is the constraint of pointers to records of the schema.
type messagePointer[T any] interface {
	*T
	message
}

// consumeRepeated parses one entry of a repeated record field and appends it to the target.
func consumeRepeated[T any, PT messagePointer[T]](f field, target *[]T) (int, error) {
	var value T
	length, err := f.consumeMessage(PT(&value))
	if err != nil {
		return 0, err
	}
	*target = append(*target, value)

	return length, nil
}

// appendRepeated appends every entry of a repeated record field.
func appendRepeated[T any, PT messagePointer[T]](buffer []byte, number protowire.Number, values []T) []byte {
	for i := range values {
		buffer = appendMessage(buffer, number, PT(&values[i]))
	}

	return buffer
}

// consumeRepeatedBytes parses one entry of a repeated bytes field and appends it to the target.
func consumeRepeatedBytes(f field, target *[][]byte) (int, error) {
	var value []byte
	length, err := f.consumeBytes(&value)
	if err != nil {
		return 0, err
	}
	*target = append(*target, value)

	return length, nil
}

// appendRepeatedBytes appends every entry of a repeated bytes field, empty entries included.
func appendRepeatedBytes(buffer []byte, number protowire.Number, values [][]byte) []byte {
	for _, value := range values {
		buffer = protowire.AppendTag(buffer, number, protowire.BytesType)
		buffer = protowire.AppendBytes(buffer, value)
	}

	return buffer
}

// consumeOptional parses a singular record field. Repeated occurrences of the field are merged into one record.
func consumeOptional[T any, PT messagePointer[T]](f field, target *PT) (int, error) {
	if *target == nil {
		*target = PT(new(T))
	}

	return f.consumeMessage(*target)
}
