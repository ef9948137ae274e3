package wire

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers follow greeter.proto. Zero values are not written, matching
// proto3 implicit presence.

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendInt64(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendMessage(b []byte, num protowire.Number, inner []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

func timestampWire(t time.Time) []byte {
	b := appendInt64(nil, 1, t.Unix())
	return appendInt64(b, 2, int64(t.Nanosecond()))
}

// eachField walks the fields of an encoded message. fn returns how many bytes
// of v it consumed, or 0 to have the field skipped.
func eachField(b []byte, fn func(num protowire.Number, typ protowire.Type, v []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		n, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

func consumeString(typ protowire.Type, b []byte, dst *string) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeString(b)
	if n >= 0 {
		*dst = v
	}
	return n
}

func consumeInt64(typ protowire.Type, b []byte, dst *int64) int {
	if typ != protowire.VarintType {
		return 0
	}
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = int64(v)
	}
	return n
}

func consumeStatus(typ protowire.Type, b []byte, dst *Status) int {
	var v int64
	n := consumeInt64(typ, b, &v)
	if n > 0 {
		*dst = Status(int32(v))
	}
	return n
}

func consumeMessage(typ protowire.Type, b []byte, dst Message) (int, error) {
	if typ != protowire.BytesType {
		return 0, nil
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n, nil
	}
	return n, dst.UnmarshalWire(v)
}

type timestamp struct{ t time.Time }

func (ts *timestamp) MarshalWire() ([]byte, error) {
	return timestampWire(ts.t), nil
}

func (ts *timestamp) UnmarshalWire(b []byte) error {
	var sec, nsec int64
	err := eachField(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return consumeInt64(typ, v, &sec), nil
		case 2:
			return consumeInt64(typ, v, &nsec), nil
		}
		return 0, nil
	})
	ts.t = time.Unix(sec, nsec).UTC()
	return err
}

func (x *Empty) MarshalWire() ([]byte, error) { return nil, nil }

func (x *Empty) UnmarshalWire(b []byte) error {
	return eachField(b, func(protowire.Number, protowire.Type, []byte) (int, error) { return 0, nil })
}

func (x *ToDoDetails) appendWire(b []byte) []byte {
	b = appendString(b, 1, x.Title)
	b = appendString(b, 2, x.Description)
	return appendInt64(b, 3, int64(x.Status))
}

func (x *ToDoDetails) MarshalWire() ([]byte, error) { return x.appendWire(nil), nil }

func (x *ToDoDetails) UnmarshalWire(b []byte) error {
	*x = ToDoDetails{}
	return eachField(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, v, &x.Title), nil
		case 2:
			return consumeString(typ, v, &x.Description), nil
		case 3:
			return consumeStatus(typ, v, &x.Status), nil
		}
		return 0, nil
	})
}

func (x *ToDoItem) appendWire(b []byte) []byte {
	b = appendInt64(b, 1, x.Id)
	if x.Item != nil {
		b = appendMessage(b, 2, x.Item.appendWire(nil))
	}
	if x.CreatedAt != nil {
		b = appendMessage(b, 3, timestampWire(*x.CreatedAt))
	}
	return b
}

func (x *ToDoItem) MarshalWire() ([]byte, error) { return x.appendWire(nil), nil }

func (x *ToDoItem) UnmarshalWire(b []byte) error {
	*x = ToDoItem{}
	return eachField(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return consumeInt64(typ, v, &x.Id), nil
		case 2:
			x.Item = &ToDoDetails{}
			return consumeMessage(typ, v, x.Item)
		case 3:
			var ts timestamp
			n, err := consumeMessage(typ, v, &ts)
			if n > 0 && err == nil {
				x.CreatedAt = &ts.t
			}
			return n, err
		}
		return 0, nil
	})
}

func (x *GetAllResponse) MarshalWire() ([]byte, error) {
	var b []byte
	for _, it := range x.Items {
		b = appendMessage(b, 1, it.appendWire(nil))
	}
	return b, nil
}

func (x *GetAllResponse) UnmarshalWire(b []byte) error {
	*x = GetAllResponse{}
	return eachField(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		it := &ToDoItem{}
		n, err := consumeMessage(typ, v, it)
		if n > 0 && err == nil {
			x.Items = append(x.Items, it)
		}
		return n, err
	})
}

func (x *CreateRequest) MarshalWire() ([]byte, error) {
	if x.Item == nil {
		return nil, nil
	}
	return appendMessage(nil, 1, x.Item.appendWire(nil)), nil
}

func (x *CreateRequest) UnmarshalWire(b []byte) error {
	*x = CreateRequest{}
	return eachField(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		x.Item = &ToDoDetails{}
		return consumeMessage(typ, v, x.Item)
	})
}

func (x *CreateResponse) MarshalWire() ([]byte, error) {
	if x.Item == nil {
		return nil, nil
	}
	return appendMessage(nil, 1, x.Item.appendWire(nil)), nil
}

func (x *CreateResponse) UnmarshalWire(b []byte) error {
	*x = CreateResponse{}
	return eachField(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		x.Item = &ToDoItem{}
		return consumeMessage(typ, v, x.Item)
	})
}

func (x *DeleteRequest) MarshalWire() ([]byte, error) { return appendInt64(nil, 1, x.Id), nil }

func (x *DeleteRequest) UnmarshalWire(b []byte) error {
	*x = DeleteRequest{}
	return eachField(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		return consumeInt64(typ, v, &x.Id), nil
	})
}

func (x *UpdateStatusRequest) MarshalWire() ([]byte, error) {
	b := appendInt64(nil, 1, x.Id)
	return appendInt64(b, 2, int64(x.Status)), nil
}

func (x *UpdateStatusRequest) UnmarshalWire(b []byte) error {
	*x = UpdateStatusRequest{}
	return eachField(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return consumeInt64(typ, v, &x.Id), nil
		case 2:
			return consumeStatus(typ, v, &x.Status), nil
		}
		return 0, nil
	})
}

func (x *HelloRequest) MarshalWire() ([]byte, error) { return appendString(nil, 1, x.Name), nil }

func (x *HelloRequest) UnmarshalWire(b []byte) error {
	*x = HelloRequest{}
	return eachField(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		return consumeString(typ, v, &x.Name), nil
	})
}

func (x *HelloReply) MarshalWire() ([]byte, error) { return appendString(nil, 1, x.Message), nil }

func (x *HelloReply) UnmarshalWire(b []byte) error {
	*x = HelloReply{}
	return eachField(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		return consumeString(typ, v, &x.Message), nil
	})
}
