package rowset

import (
	"bytes"
	"encoding/gob"
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
	"rsc.io/ordered"
)

type Marshaler interface {
	Marshal(v any) (data []byte, err error)
}

type Unmarshaler interface {
	Unmarshal(data []byte, v any) error
}

type MarshalUnmarshaler interface {
	Marshaler
	Unmarshaler
}

var (
	JsonMaUn    = jsonMarshalUnmarshaler{}
	GobMaUn     = gobMarshalUnmarshaler{}
	MsgpackMaUn = msgpackMarshalUnmarshaler{}
	orderedMaUn = orderedMarshalUnmarshaler{}
)

// ToKey encodes values into an order-preserving byte key, used for index
// bucket keys so that range scans follow value order.
func ToKey(values ...any) ([]byte, error) {
	return orderedMaUn.Marshal(values)
}

type jsonMarshalUnmarshaler struct{}

func (jsonMarshalUnmarshaler) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonMarshalUnmarshaler) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

type gobMarshalUnmarshaler struct{}

func (gobMarshalUnmarshaler) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gobMarshalUnmarshaler) Unmarshal(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewBuffer(data)).Decode(v)
}

type msgpackMarshalUnmarshaler struct{}

func (msgpackMarshalUnmarshaler) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (msgpackMarshalUnmarshaler) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

type orderedMarshalUnmarshaler struct{}

func (orderedMarshalUnmarshaler) Marshal(v any) ([]byte, error) {
	vList, ok := v.([]any)
	if !ok {
		return nil, errCannotMarshal(v)
	}
	if !ordered.CanEncode(vList...) {
		return nil, errCannotMarshal(v)
	}
	return ordered.Encode(vList...), nil
}

func (orderedMarshalUnmarshaler) Unmarshal(data []byte, v any) error {
	vList, ok := v.(*[]any)
	if !ok {
		return errCannotUnmarshal(v)
	}
	decoded, err := ordered.DecodeAny(data)
	if err != nil {
		return err
	}
	*vList = decoded
	return nil
}
