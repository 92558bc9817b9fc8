package wire

import (
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// TestSchema encodes a record with every field of snapshot.proto set through the protobuf runtime and checks that the
// records of this package carry all of them through Unmarshal and Marshal.
func TestSchema(t *testing.T) {
	schema := loadSchema(t)
	snapshotDescriptor := schema.Messages().ByName("Snapshot")
	require.NotNil(t, snapshotDescriptor)

	expected := dynamicpb.NewMessage(snapshotDescriptor)
	populateMessage(t, expected)
	encoded, err := proto.MarshalOptions{Deterministic: true}.Marshal(expected)
	require.NoError(t, err)

	snapshot := new(Snapshot)
	require.NoError(t, snapshot.Unmarshal(encoded))

	actual := dynamicpb.NewMessage(snapshotDescriptor)
	require.NoError(t, proto.Unmarshal(snapshot.Marshal(), actual))
	assert.True(t, proto.Equal(expected, actual), "expected %v, got %v", expected, actual)
	assertNoUnknownFields(t, actual)
}

func TestSchema_FieldNumbers(t *testing.T) {
	schema := loadSchema(t)
	bankDescriptor := schema.Messages().ByName("Bank")
	require.NotNil(t, bankDescriptor)

	assert.Equal(t, 33, bankDescriptor.Fields().Len())
	assert.True(t, bankDescriptor.Fields().ByNumber(5).HasPresence())
	assert.True(t, bankDescriptor.Fields().ByNumber(13).HasPresence())
	assert.True(t, bankDescriptor.Fields().ByNumber(22).IsPacked())
	assert.Nil(t, schema.Messages().ByName("Stakes").Fields().ByNumber(3))
}

// loadSchema builds the descriptor of snapshot.proto. The file only uses messages, scalar fields, repeated and
// optional labels and reserved numbers, which is all that is understood here.
func loadSchema(t *testing.T) protoreflect.FileDescriptor {
	source, err := os.ReadFile("snapshot.proto")
	require.NoError(t, err)

	fileProto := &descriptorpb.FileDescriptorProto{
		Name:   proto.String("snapshot.proto"),
		Syntax: proto.String("proto3"),
	}

	var message *descriptorpb.DescriptorProto
	for _, line := range strings.Split(string(source), "\n") {
		tokens := strings.Fields(strings.TrimSuffix(strings.TrimSpace(line), ";"))
		switch {
		case len(tokens) == 0:
			continue
		case tokens[0] == "package":
			fileProto.Package = proto.String(tokens[1])
		case tokens[0] == "message":
			message = &descriptorpb.DescriptorProto{Name: proto.String(tokens[1])}
			fileProto.MessageType = append(fileProto.MessageType, message)
		case tokens[0] == "}":
			message = nil
		case message == nil, tokens[0] == "reserved":
			continue
		default:
			message.Field = append(message.Field, schemaField(t, fileProto.GetPackage(), message, tokens))
		}
	}

	schema, err := protodesc.NewFile(fileProto, new(protoregistry.Files))
	require.NoError(t, err)

	return schema
}

var schemaScalarTypes = map[string]descriptorpb.FieldDescriptorProto_Type{
	"uint64": descriptorpb.FieldDescriptorProto_TYPE_UINT64,
	"uint32": descriptorpb.FieldDescriptorProto_TYPE_UINT32,
	"int64":  descriptorpb.FieldDescriptorProto_TYPE_INT64,
	"double": descriptorpb.FieldDescriptorProto_TYPE_DOUBLE,
	"bool":   descriptorpb.FieldDescriptorProto_TYPE_BOOL,
	"bytes":  descriptorpb.FieldDescriptorProto_TYPE_BYTES,
}

func schemaField(t *testing.T, packageName string, message *descriptorpb.DescriptorProto, tokens []string) *descriptorpb.FieldDescriptorProto {
	label := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	explicitPresence := false
	switch tokens[0] {
	case "repeated":
		label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
		tokens = tokens[1:]
	case "optional":
		explicitPresence = true
		tokens = tokens[1:]
	}
	require.Len(t, tokens, 4, "unexpected field declaration in message %s: %v", message.GetName(), tokens)

	number, err := strconv.Atoi(tokens[3])
	require.NoError(t, err)

	field := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(tokens[1]),
		Number: proto.Int32(int32(number)),
		Label:  label.Enum(),
	}
	if scalarType, isScalar := schemaScalarTypes[tokens[0]]; isScalar {
		field.Type = scalarType.Enum()
	} else {
		field.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
		field.TypeName = proto.String("." + packageName + "." + tokens[0])
	}

	if explicitPresence {
		field.Proto3Optional = proto.Bool(true)
		field.OneofIndex = proto.Int32(int32(len(message.OneofDecl)))
		message.OneofDecl = append(message.OneofDecl, &descriptorpb.OneofDescriptorProto{Name: proto.String("_" + tokens[1])})
	}

	return field
}

// populateMessage sets every field of the message to a non-default value. Repeated fields get two elements.
func populateMessage(t *testing.T, message protoreflect.Message) {
	fields := message.Descriptor().Fields()
	for i := 0; i < fields.Len(); i++ {
		field := fields.Get(i)

		switch {
		case field.IsList():
			list := message.Mutable(field).List()
			for element := 0; element < 2; element++ {
				if field.Kind() == protoreflect.MessageKind {
					value := list.NewElement()
					populateMessage(t, value.Message())
					list.Append(value)
					continue
				}
				list.Append(scalarValue(t, field, element))
			}
		case field.Kind() == protoreflect.MessageKind:
			populateMessage(t, message.Mutable(field).Message())
		default:
			message.Set(field, scalarValue(t, field, 0))
		}
	}
}

func scalarValue(t *testing.T, field protoreflect.FieldDescriptor, element int) protoreflect.Value {
	seed := uint64(field.Number())*10 + uint64(element) + 1

	switch field.Kind() {
	case protoreflect.Uint64Kind:
		return protoreflect.ValueOfUint64(seed)
	case protoreflect.Uint32Kind:
		return protoreflect.ValueOfUint32(uint32(seed))
	case protoreflect.Int64Kind:
		return protoreflect.ValueOfInt64(-int64(seed))
	case protoreflect.DoubleKind:
		return protoreflect.ValueOfFloat64(float64(seed) + 0.25)
	case protoreflect.BoolKind:
		return protoreflect.ValueOfBool(true)
	case protoreflect.BytesKind:
		value := make([]byte, 32)
		for i := range value {
			value[i] = byte(seed)
		}

		return protoreflect.ValueOfBytes(value)
	default:
		t.Fatalf("unsupported kind %s of field %s", field.Kind(), field.FullName())

		return protoreflect.Value{}
	}
}

func assertNoUnknownFields(t *testing.T, message protoreflect.Message) {
	assert.Empty(t, message.GetUnknown(), "unknown fields in %s", message.Descriptor().FullName())

	message.Range(func(field protoreflect.FieldDescriptor, value protoreflect.Value) bool {
		if field.Kind() != protoreflect.MessageKind {
			return true
		}

		if field.IsList() {
			for i := 0; i < value.List().Len(); i++ {
				assertNoUnknownFields(t, value.List().Get(i).Message())
			}

			return true
		}
		assertNoUnknownFields(t, value.Message())

		return true
	})
}
