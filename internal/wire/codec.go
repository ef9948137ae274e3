package wire

import (
	"encoding/json"
	"fmt"
)

// Codec names as registered with Connect. They replace Connect's built-in
// proto and protojson codecs, which only accept generated messages.
const (
	CodecProto = "proto"
	CodecJSON  = "json"
)

// ProtoCodec is the binary encoding.
type ProtoCodec struct{}

func (ProtoCodec) Name() string { return CodecProto }

func (ProtoCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("%T is not a wire message", v)
	}
	return m.MarshalWire()
}

func (ProtoCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("%T is not a wire message", v)
	}
	return m.UnmarshalWire(data)
}

// JSONCodec is the text encoding. Field names, int64-as-string and enum
// names follow the protojson mapping so either side may be a stock Connect
// implementation.
type JSONCodec struct{}

func (JSONCodec) Name() string { return CodecJSON }

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
