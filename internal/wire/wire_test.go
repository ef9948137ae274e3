package wire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/idilsaglam/todo/internal/model"
)

func TestCreateRequestBinaryLayout(t *testing.T) {
	req := &CreateRequest{Item: &ToDoDetails{Title: "Buy milk", Status: model.StatusOpen}}
	b, err := ProtoCodec{}.Marshal(req)
	require.NoError(t, err)

	want := []byte{0x0a, 0x0c, 0x0a, 0x08}
	want = append(want, "Buy milk"...)
	want = append(want, 0x18, 0x01)
	assert.Equal(t, want, b)
}

func TestUpdateStatusBinaryLayout(t *testing.T) {
	b, err := ProtoCodec{}.Marshal(&UpdateStatusRequest{Id: 42, Status: model.StatusInProgress})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x08, 0x2a, 0x10, 0x02}, b)

	var got UpdateStatusRequest
	require.NoError(t, ProtoCodec{}.Unmarshal(b, &got))
	assert.Equal(t, UpdateStatusRequest{Id: 42, Status: model.StatusInProgress}, got)
}

func TestGetAllResponseSkipsUnknownFields(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 500, time.UTC)
	resp := &GetAllResponse{Items: []*ToDoItem{
		{Id: 1, Item: &ToDoDetails{Title: "a", Status: model.StatusDone}, CreatedAt: &created},
		{Id: 2, Item: &ToDoDetails{Title: "b", Description: "second"}},
	}}
	b, err := resp.MarshalWire()
	require.NoError(t, err)

	// field 9 (varint) and field 10 (bytes) are not part of the contract
	b = protowire.AppendTag(b, 9, protowire.VarintType)
	b = protowire.AppendVarint(b, 77)
	b = protowire.AppendTag(b, 10, protowire.BytesType)
	b = protowire.AppendString(b, "ignored")

	var got GetAllResponse
	require.NoError(t, got.UnmarshalWire(b))
	require.Len(t, got.Items, 2)

	first := got.Items[0].ToModel()
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, model.StatusDone, first.Status)
	assert.True(t, created.Equal(first.CreatedAt))

	second := got.Items[1].ToModel()
	assert.Equal(t, "second", second.Description)
	assert.True(t, second.CreatedAt.IsZero())
}

func TestUnmarshalTruncated(t *testing.T) {
	var x ToDoDetails
	err := x.UnmarshalWire([]byte{0x0a, 0x05, 'a'})
	assert.Error(t, err)
}

func TestJSONCodecFollowsProtoJSON(t *testing.T) {
	b, err := JSONCodec{}.Marshal(&CreateRequest{Item: &ToDoDetails{Title: "Buy milk", Status: model.StatusOpen}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"item":{"title":"Buy milk","status":"STATUS_OPEN"}}`, string(b))

	b, err = JSONCodec{}.Marshal(&DeleteRequest{Id: 9007199254740993})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"9007199254740993"}`, string(b))

	var resp GetAllResponse
	require.NoError(t, JSONCodec{}.Unmarshal([]byte(`{"items":[{"id":"7","item":{"title":"x","status":2},"createdAt":"2025-03-01T12:00:00Z","extra":true}]}`), &resp))
	require.Len(t, resp.Items, 1)
	it := resp.Items[0].ToModel()
	assert.Equal(t, int64(7), it.ID)
	assert.Equal(t, model.StatusInProgress, it.Status)
	assert.Equal(t, 2025, it.CreatedAt.Year())

	var empty Empty
	assert.NoError(t, JSONCodec{}.Unmarshal(nil, &empty))
}

func TestJSONCodecToleratesUnknownStatus(t *testing.T) {
	var resp GetAllResponse
	data := `{"items":[{"id":"1","item":{"title":"x","status":"STATUS_ARCHIVED"}},{"id":"2","item":{"title":"y","status":"STATUS_DONE"}}]}`
	require.NoError(t, JSONCodec{}.Unmarshal([]byte(data), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, model.StatusUnspecified, resp.Items[0].ToModel().Status)
	assert.Equal(t, "x", resp.Items[0].ToModel().Title)
	assert.Equal(t, model.StatusDone, resp.Items[1].ToModel().Status)
}

func TestProtoCodecKeepsUnknownStatusNumber(t *testing.T) {
	b, err := (&ToDoDetails{Title: "x", Status: model.Status(9)}).MarshalWire()
	require.NoError(t, err)
	var got ToDoDetails
	require.NoError(t, got.UnmarshalWire(b))
	assert.Equal(t, model.Status(9), got.Status)
}

func TestProtoCodecRejectsForeignTypes(t *testing.T) {
	_, err := ProtoCodec{}.Marshal(struct{}{})
	assert.Error(t, err)
	assert.Error(t, ProtoCodec{}.Unmarshal(nil, new(int)))
}

func TestFromModel(t *testing.T) {
	x := FromModel(model.Item{ID: 3, Title: "t"})
	assert.Nil(t, x.CreatedAt)
	assert.Equal(t, "t", x.GetItem().Title)
	assert.Equal(t, &ToDoDetails{}, (*ToDoItem)(nil).GetItem())
}
