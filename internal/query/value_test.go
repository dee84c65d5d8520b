package query

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestValueOfMapsDriverTypes(t *testing.T) {
	ts := time.Date(2023, time.November, 8, 9, 30, 0, 0, time.UTC)
	cases := []struct {
		raw  any
		kind Kind
	}{
		{nil, KindNull},
		{true, KindBool},
		{int8(-3), KindInt8},
		{int16(7), KindInt16},
		{int32(42), KindInt32},
		{int64(1 << 40), KindInt64},
		{uint8(200), KindUint8},
		{uint16(60000), KindUint16},
		{uint32(4000000000), KindUint32},
		{uint64(math.MaxUint64), KindUint64},
		{float32(1.5), KindFloat32},
		{2.25, KindFloat64},
		{"abc", KindString},
		{[]byte{0xde, 0xad}, KindBytes},
		{ts, KindTime},
		{big.NewInt(12), KindOther},
	}
	for _, tc := range cases {
		value := ValueOf(tc.raw)
		if value.Kind() != tc.kind {
			t.Fatalf("ValueOf(%#v).Kind() = %s, want %s", tc.raw, value.Kind(), tc.kind)
		}
	}
}

func TestValueAccessors(t *testing.T) {
	if got, ok := ValueOf(int32(42)).Int(); !ok || got != 42 {
		t.Fatalf("Int() = %d, %v", got, ok)
	}
	if _, ok := ValueOf(uint8(1)).Int(); ok {
		t.Fatal("Int() should not accept unsigned variants")
	}
	if got, ok := ValueOf(uint32(7)).Uint(); !ok || got != 7 {
		t.Fatalf("Uint() = %d, %v", got, ok)
	}
	if got, ok := ValueOf(float32(0.5)).Float(); !ok || got != 0.5 {
		t.Fatalf("Float() = %v, %v", got, ok)
	}
	if got, ok := ValueOf("x").Str(); !ok || got != "x" {
		t.Fatalf("Str() = %q, %v", got, ok)
	}
	if got, ok := ValueOf(false).Bool(); !ok || got {
		t.Fatalf("Bool() = %v, %v", got, ok)
	}
	if !ValueOf(nil).IsNull() {
		t.Fatal("IsNull() = false for nil")
	}
	if got := ValueOf(int16(-5)).Any(); got != int16(-5) {
		t.Fatalf("Any() = %#v", got)
	}
}

func TestValueBytesAreCopied(t *testing.T) {
	raw := []byte("ab")
	value := ValueOf(raw)
	raw[0] = 'z'
	got, _ := value.Bytes()
	if string(got) != "ab" {
		t.Fatalf("Bytes() = %q", got)
	}
}

func TestValueOfUUIDIsCanonicalString(t *testing.T) {
	id := uuid.MustParse("c06d5ea9-ebdb-4414-8c4f-5d2f0f3a9b11")
	value := ValueOf(id)
	if value.Kind() != KindString {
		t.Fatalf("Kind() = %s", value.Kind())
	}
	if got, _ := value.Str(); got != "c06d5ea9-ebdb-4414-8c4f-5d2f0f3a9b11" {
		t.Fatalf("Str() = %q", got)
	}
}

func TestValueJSON(t *testing.T) {
	row := []Value{
		ValueOf(int32(1)),
		ValueOf("a"),
		ValueOf(nil),
		ValueOf(math.NaN()),
		ValueOf(big.NewInt(9)),
	}
	encoded, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(encoded) != `[1,"a",null,"NaN",9]` {
		t.Fatalf("json = %s", encoded)
	}
}

func TestValueString(t *testing.T) {
	if got := ValueOf(nil).String(); got != "NULL" {
		t.Fatalf("String() = %q", got)
	}
	if got := ValueOf(uint64(5)).String(); got != "5" {
		t.Fatalf("String() = %q", got)
	}
	if got := ValueOf(float32(0.1)).String(); got != "0.1" {
		t.Fatalf("String() = %q", got)
	}
}
