package rowset

import (
	"bytes"
	"errors"
	"testing"
)

func TestToKeyPreservesOrder(t *testing.T) {
	k1, err := ToKey(int64(3))
	if err != nil {
		t.Fatal(err)
	}
	k2, err := ToKey(int64(40))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Compare(k1, k2) >= 0 {
		t.Errorf("expected key for 3 to sort before key for 40")
	}
}

func TestToKeyDeterministic(t *testing.T) {
	a, err := ToKey(int64(7), "x")
	if err != nil {
		t.Fatal(err)
	}
	b, err := ToKey(int64(7), "x")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("same values produced different keys")
	}
}

func TestFloatKeyBitsOrder(t *testing.T) {
	vals := []float64{-100.5, -1, 0, 0.25, 3, 1e9}
	for i := 1; i < len(vals); i++ {
		if floatKeyBits(vals[i-1]) >= floatKeyBits(vals[i]) {
			t.Errorf("floatKeyBits(%v) >= floatKeyBits(%v)", vals[i-1], vals[i])
		}
	}
}

func TestCodecsRoundTripRowMap(t *testing.T) {
	row := map[string]any{"id": int64(1), "name": "alice"}
	for name, maUn := range map[string]MarshalUnmarshaler{
		"json":    JsonMaUn,
		"msgpack": MsgpackMaUn,
	} {
		data, err := maUn.Marshal(row)
		if err != nil {
			t.Fatalf("%s marshal: %v", name, err)
		}
		var got map[string]any
		if err := maUn.Unmarshal(data, &got); err != nil {
			t.Fatalf("%s unmarshal: %v", name, err)
		}
		if got["name"] != "alice" {
			t.Errorf("%s: name = %v", name, got["name"])
		}
	}
}

func TestOrderedRejectsUnsupportedValues(t *testing.T) {
	_, err := ToKey(struct{ X int }{1})
	if err == nil {
		t.Fatal("expected error for unencodable value")
	}
	if errors.Is(err, ErrTypeMismatch) {
		// ToKey failures are marshal errors, not conversion errors.
		t.Errorf("unexpected error class: %v", err)
	}
}
