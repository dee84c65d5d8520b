package query

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Kind enumerates the variants a Value can hold.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindBytes
	KindTime
	// KindOther holds engine values with no dedicated variant, e.g. decimals,
	// intervals, hugeints, lists, maps and structs.
	KindOther
)

var kindNames = [...]string{
	KindNull:    "null",
	KindBool:    "bool",
	KindInt8:    "i8",
	KindInt16:   "i16",
	KindInt32:   "i32",
	KindInt64:   "i64",
	KindUint8:   "u8",
	KindUint16:  "u16",
	KindUint32:  "u32",
	KindUint64:  "u64",
	KindFloat32: "f32",
	KindFloat64: "f64",
	KindString:  "str",
	KindBytes:   "bytes",
	KindTime:    "time",
	KindOther:   "other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is one cell of a result row. Exactly one of the payload fields is
// meaningful, selected by kind.
type Value struct {
	kind  Kind
	i     int64
	u     uint64
	f     float64
	s     string
	b     []byte
	t     time.Time
	other any
}

// ValueOf wraps a value produced by the database driver.
func ValueOf(raw any) Value {
	switch typed := raw.(type) {
	case nil:
		return Value{kind: KindNull}
	case bool:
		if typed {
			return Value{kind: KindBool, i: 1}
		}
		return Value{kind: KindBool}
	case int8:
		return Value{kind: KindInt8, i: int64(typed)}
	case int16:
		return Value{kind: KindInt16, i: int64(typed)}
	case int32:
		return Value{kind: KindInt32, i: int64(typed)}
	case int64:
		return Value{kind: KindInt64, i: typed}
	case int:
		return Value{kind: KindInt64, i: int64(typed)}
	case uint8:
		return Value{kind: KindUint8, u: uint64(typed)}
	case uint16:
		return Value{kind: KindUint16, u: uint64(typed)}
	case uint32:
		return Value{kind: KindUint32, u: uint64(typed)}
	case uint64:
		return Value{kind: KindUint64, u: typed}
	case float32:
		return Value{kind: KindFloat32, f: float64(typed)}
	case float64:
		return Value{kind: KindFloat64, f: typed}
	case string:
		return Value{kind: KindString, s: typed}
	case []byte:
		return Value{kind: KindBytes, b: append([]byte(nil), typed...)}
	case time.Time:
		return Value{kind: KindTime, t: typed}
	case uuid.UUID:
		return Value{kind: KindString, s: typed.String()}
	default:
		return Value{kind: KindOther, other: typed}
	}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Bool() (bool, bool) {
	return v.i != 0, v.kind == KindBool
}

// Int returns signed integer variants widened to int64.
func (v Value) Int() (int64, bool) {
	switch v.kind {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return v.i, true
	}
	return 0, false
}

// Uint returns unsigned integer variants widened to uint64.
func (v Value) Uint() (uint64, bool) {
	switch v.kind {
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return v.u, true
	}
	return 0, false
}

func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat32, KindFloat64:
		return v.f, true
	}
	return 0, false
}

func (v Value) Str() (string, bool) {
	return v.s, v.kind == KindString
}

func (v Value) Bytes() ([]byte, bool) {
	return v.b, v.kind == KindBytes
}

func (v Value) Time() (time.Time, bool) {
	return v.t, v.kind == KindTime
}

// Any returns the payload as a plain Go value of the variant's native type.
func (v Value) Any() any {
	switch v.kind {
	case KindBool:
		return v.i != 0
	case KindInt8:
		return int8(v.i)
	case KindInt16:
		return int16(v.i)
	case KindInt32:
		return int32(v.i)
	case KindInt64:
		return v.i
	case KindUint8:
		return uint8(v.u)
	case KindUint16:
		return uint16(v.u)
	case KindUint32:
		return uint32(v.u)
	case KindUint64:
		return v.u
	case KindFloat32:
		return float32(v.f)
	case KindFloat64:
		return v.f
	case KindString:
		return v.s
	case KindBytes:
		return v.b
	case KindTime:
		return v.t
	case KindOther:
		return v.other
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindBool:
		return strconv.FormatBool(v.i != 0)
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return strconv.FormatInt(v.i, 10)
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return strconv.FormatUint(v.u, 10)
	case KindFloat32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	case KindBytes:
		return fmt.Sprintf("%x", v.b)
	case KindTime:
		return v.t.Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", v.other)
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindFloat32, KindFloat64:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return json.Marshal(v.String())
		}
	case KindOther:
		if encoded, err := json.Marshal(v.other); err == nil {
			return encoded, nil
		}
		return json.Marshal(v.String())
	}
	return json.Marshal(v.Any())
}
