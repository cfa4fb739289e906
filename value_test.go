package rowset

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestValueConversions(t *testing.T) {
	if n, err := ValueOf(int16(7)).Int64(); err != nil || n != 7 {
		t.Errorf("Int64(int16) = %d, %v", n, err)
	}
	if f, err := ValueOf(int32(9)).Float64(); err != nil || f != 9 {
		t.Errorf("Float64(int32) = %v, %v", f, err)
	}
	if f, err := ValueOf(float32(1.5)).Float64(); err != nil || f != 1.5 {
		t.Errorf("Float64(float32) = %v, %v", f, err)
	}
	if s, err := ValueOf("hi").Str(); err != nil || s != "hi" {
		t.Errorf("Str = %q, %v", s, err)
	}
	if b, err := ValueOf(true).Bool(); err != nil || !b {
		t.Errorf("Bool = %v, %v", b, err)
	}
	now := time.Now()
	if ts, err := ValueOf(now).Time(); err != nil || !ts.Equal(now) {
		t.Errorf("Time = %v, %v", ts, err)
	}
	u := uuid.New()
	if got, err := ValueOf(u).UUID(); err != nil || got != u {
		t.Errorf("UUID = %v, %v", got, err)
	}
}

func TestValueConversionFailuresAreTypeMismatch(t *testing.T) {
	if _, err := ValueOf("hi").Int64(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Int64(string) error = %v", err)
	}
	if _, err := ValueOf(1).Str(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Str(int) error = %v", err)
	}
	if _, err := Null().Int64(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Int64(NULL) error = %v", err)
	}
}

func TestValueNull(t *testing.T) {
	if !Null().IsNull() {
		t.Error("Null is not null")
	}
	if !ValueOf(nil).IsNull() {
		t.Error("ValueOf(nil) is not null")
	}
	if ValueOf(0).IsNull() {
		t.Error("zero is not NULL")
	}
	if Null().Any() != nil {
		t.Error("Any of NULL is not nil")
	}
	if Null().String() != "NULL" {
		t.Errorf("String of NULL = %q", Null().String())
	}
}

func TestValueEqual(t *testing.T) {
	if !ValueOf(int8(3)).Equal(ValueOf(int64(3))) {
		t.Error("numeric equality across widths failed")
	}
	if !ValueOf(3).Equal(ValueOf(3.0)) {
		t.Error("int/float equality failed")
	}
	if !ValueOf(3.0).Equal(ValueOf(3)) {
		t.Error("float/int equality failed")
	}
	if ValueOf(3).Equal(ValueOf(3.5)) || ValueOf(3.5).Equal(ValueOf(3)) {
		t.Error("3 equals 3.5")
	}
	if ValueOf(3).Equal(ValueOf(4)) {
		t.Error("3 equals 4")
	}
	if !Null().Equal(Null()) {
		t.Error("NULL does not equal NULL")
	}
	if Null().Equal(ValueOf(0)) {
		t.Error("NULL equals zero")
	}
	if !ValueOf([]byte{1, 2}).Equal(ValueOf([]byte{1, 2})) {
		t.Error("byte slice equality failed")
	}
	if !ValueOf("a").Equal(ValueOf("a")) || ValueOf("a").Equal(ValueOf("b")) {
		t.Error("string equality failed")
	}
}
