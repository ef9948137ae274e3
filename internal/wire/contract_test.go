package wire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
	_ "google.golang.org/protobuf/types/known/timestamppb"

	"github.com/idilsaglam/todo/internal/model"
)

// greeterFile mirrors proto/greeter.proto so the hand-written messages can
// be checked against the protobuf runtime.
func greeterFile(t *testing.T) protoreflect.FileDescriptor {
	t.Helper()
	type ft = descriptorpb.FieldDescriptorProto_Type
	field := func(name string, num int32, typ ft, typeName string) *descriptorpb.FieldDescriptorProto {
		f := &descriptorpb.FieldDescriptorProto{
			Name:   proto.String(name),
			Number: proto.Int32(num),
			Type:   typ.Enum(),
			Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		}
		if typeName != "" {
			f.TypeName = proto.String(typeName)
		}
		return f
	}
	repeated := func(f *descriptorpb.FieldDescriptorProto) *descriptorpb.FieldDescriptorProto {
		f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
		return f
	}
	message := func(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
		return &descriptorpb.DescriptorProto{Name: proto.String(name), Field: fields}
	}
	const (
		str  = descriptorpb.FieldDescriptorProto_TYPE_STRING
		i64  = descriptorpb.FieldDescriptorProto_TYPE_INT64
		enum = descriptorpb.FieldDescriptorProto_TYPE_ENUM
		msg  = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
	)

	var values []*descriptorpb.EnumValueDescriptorProto
	for _, s := range model.Statuses() {
		values = append(values, &descriptorpb.EnumValueDescriptorProto{
			Name:   proto.String(s.String()),
			Number: proto.Int32(int32(s)),
		})
	}

	fdp := &descriptorpb.FileDescriptorProto{
		Name:       proto.String("greeter.proto"),
		Package:    proto.String("greeter"),
		Syntax:     proto.String("proto3"),
		Dependency: []string{"google/protobuf/timestamp.proto"},
		EnumType:   []*descriptorpb.EnumDescriptorProto{{Name: proto.String("Status"), Value: values}},
		MessageType: []*descriptorpb.DescriptorProto{
			message("ToDoDetails",
				field("title", 1, str, ""),
				field("description", 2, str, ""),
				field("status", 3, enum, ".greeter.Status")),
			message("ToDoItem",
				field("id", 1, i64, ""),
				field("item", 2, msg, ".greeter.ToDoDetails"),
				field("created_at", 3, msg, ".google.protobuf.Timestamp")),
			message("GetAllResponse", repeated(field("items", 1, msg, ".greeter.ToDoItem"))),
			message("UpdateStatusRequest",
				field("id", 1, i64, ""),
				field("status", 2, enum, ".greeter.Status")),
		},
	}
	fd, err := protodesc.NewFile(fdp, protoregistry.GlobalFiles)
	require.NoError(t, err)
	return fd
}

func dynamicMessage(t *testing.T, name protoreflect.Name) *dynamicpb.Message {
	t.Helper()
	md := greeterFile(t).Messages().ByName(name)
	require.NotNil(t, md, name)
	return dynamicpb.NewMessage(md)
}

func sampleResponse() *GetAllResponse {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &GetAllResponse{Items: []*ToDoItem{
		{Id: 9007199254740993, Item: &ToDoDetails{Title: "Buy milk", Description: "2 litres", Status: model.StatusInProgress}, CreatedAt: &created},
		{Id: -4, Item: &ToDoDetails{Title: "ünïcode"}},
	}}
}

func assertSameItems(t *testing.T, want, got *GetAllResponse) {
	t.Helper()
	require.Len(t, got.Items, len(want.Items))
	for i := range want.Items {
		w, g := want.Items[i].ToModel(), got.Items[i].ToModel()
		assert.Equal(t, w.ID, g.ID)
		assert.Equal(t, w.Title, g.Title)
		assert.Equal(t, w.Description, g.Description)
		assert.Equal(t, w.Status, g.Status)
		assert.True(t, w.CreatedAt.Equal(g.CreatedAt), "created at %v != %v", w.CreatedAt, g.CreatedAt)
	}
}

func TestBinaryMatchesProtobufRuntime(t *testing.T) {
	want := sampleResponse()
	b, err := ProtoCodec{}.Marshal(want)
	require.NoError(t, err)

	ref := dynamicMessage(t, "GetAllResponse")
	require.NoError(t, proto.Unmarshal(b, ref))

	back, err := proto.Marshal(ref)
	require.NoError(t, err)
	var got GetAllResponse
	require.NoError(t, ProtoCodec{}.Unmarshal(back, &got))
	assertSameItems(t, want, &got)
}

func TestJSONMatchesProtoJSON(t *testing.T) {
	want := sampleResponse()
	b, err := JSONCodec{}.Marshal(want)
	require.NoError(t, err)

	ref := dynamicMessage(t, "GetAllResponse")
	require.NoError(t, protojson.Unmarshal(b, ref), string(b))

	back, err := protojson.Marshal(ref)
	require.NoError(t, err)
	var got GetAllResponse
	require.NoError(t, JSONCodec{}.Unmarshal(back, &got), string(back))
	assertSameItems(t, want, &got)
}

func TestUpdateStatusMatchesProtobufRuntime(t *testing.T) {
	ref := dynamicMessage(t, "UpdateStatusRequest")
	require.NoError(t, protojson.Unmarshal([]byte(`{"id":"42","status":"STATUS_DONE"}`), ref))
	b, err := proto.Marshal(ref)
	require.NoError(t, err)

	ours, err := ProtoCodec{}.Marshal(&UpdateStatusRequest{Id: 42, Status: model.StatusDone})
	require.NoError(t, err)
	assert.Equal(t, b, ours)
}
