// Package dtypes defines the primitive and index dtype vocabularies shared by
// forms and types. Dtypes are carried as their wire spellings so schemas can
// round-trip through JSON without a translation table.
package dtypes

import (
	"regexp"
	"strings"
)

// Primitive is the dtype tag of a leaf array: a fixed-width numeric kind, or
// a datetime64/timedelta64 tag qualified with a unit, e.g. "datetime64[ns]".
type Primitive string

const (
	Bool       Primitive = "bool"
	Int8       Primitive = "int8"
	UInt8      Primitive = "uint8"
	Int16      Primitive = "int16"
	UInt16     Primitive = "uint16"
	Int32      Primitive = "int32"
	UInt32     Primitive = "uint32"
	Int64      Primitive = "int64"
	UInt64     Primitive = "uint64"
	Float16    Primitive = "float16"
	Float32    Primitive = "float32"
	Float64    Primitive = "float64"
	Complex64  Primitive = "complex64"
	Complex128 Primitive = "complex128"
)

// temporalPattern matches datetime64/timedelta64 tags with an optional
// step count, e.g. "datetime64[s]", "timedelta64[10us]".
var temporalPattern = regexp.MustCompile(`^(datetime64|timedelta64)\[(\d+)?(Y|M|W|D|h|m|s|ms|us|ns|ps|fs|as)\]$`)

var fixedWidths = map[Primitive]int{
	Bool:       1,
	Int8:       1,
	UInt8:      1,
	Int16:      2,
	UInt16:     2,
	Int32:      4,
	UInt32:     4,
	Int64:      8,
	UInt64:     8,
	Float16:    2,
	Float32:    4,
	Float64:    8,
	Complex64:  8,
	Complex128: 16,
}

// Valid reports whether p is a member of the primitive dtype enumeration.
func (p Primitive) Valid() bool {
	if _, ok := fixedWidths[p]; ok {
		return true
	}
	return temporalPattern.MatchString(string(p))
}

// ByteWidth returns the per-element byte size of the primitive, or 0 for an
// invalid tag. Temporal dtypes are 8 bytes regardless of unit.
func (p Primitive) ByteWidth() int {
	if w, ok := fixedWidths[p]; ok {
		return w
	}
	if temporalPattern.MatchString(string(p)) {
		return 8
	}
	return 0
}

// IsTemporal reports whether p is a datetime64 or timedelta64 tag.
func (p Primitive) IsTemporal() bool {
	return temporalPattern.MatchString(string(p))
}

// TemporalUnit returns the unit of a temporal dtype ("s", "ms", ...), or ""
// for non-temporal dtypes.
func (p Primitive) TemporalUnit() string {
	m := temporalPattern.FindStringSubmatch(string(p))
	if m == nil {
		return ""
	}
	return m[3]
}

// IsDatetime reports whether p is a datetime64 tag.
func (p Primitive) IsDatetime() bool {
	return strings.HasPrefix(string(p), "datetime64[") && p.Valid()
}

// IsTimedelta reports whether p is a timedelta64 tag.
func (p Primitive) IsTimedelta() bool {
	return strings.HasPrefix(string(p), "timedelta64[") && p.Valid()
}

func (p Primitive) String() string { return string(p) }

// Index is the dtype tag of an index, offset, mask, or tag buffer. The wire
// spellings are the compact forms used by the serialized schema format.
type Index string

const (
	IndexInt8   Index = "i8"
	IndexUInt8  Index = "u8"
	IndexInt32  Index = "i32"
	IndexUInt32 Index = "u32"
	IndexInt64  Index = "i64"
)

var indexPrimitives = map[Index]Primitive{
	IndexInt8:   Int8,
	IndexUInt8:  UInt8,
	IndexInt32:  Int32,
	IndexUInt32: UInt32,
	IndexInt64:  Int64,
}

// Valid reports whether i is a member of the index dtype enumeration.
func (i Index) Valid() bool {
	_, ok := indexPrimitives[i]
	return ok
}

// Primitive returns the primitive dtype an index buffer of this tag is made
// of (i32 -> int32 and so on).
func (i Index) Primitive() Primitive {
	return indexPrimitives[i]
}

// ByteWidth returns the per-element byte size of the index dtype.
func (i Index) ByteWidth() int {
	return indexPrimitives[i].ByteWidth()
}

// Signed reports whether the index dtype can carry the negative sentinel that
// marks a missing slot.
func (i Index) Signed() bool {
	switch i {
	case IndexInt8, IndexInt32, IndexInt64:
		return true
	default:
		return false
	}
}

func (i Index) String() string { return string(i) }

// OneOf reports whether i is one of the allowed tags.
func (i Index) OneOf(allowed ...Index) bool {
	for _, a := range allowed {
		if i == a {
			return true
		}
	}
	return false
}
