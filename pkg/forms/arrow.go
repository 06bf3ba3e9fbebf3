package forms

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/ajitpratap0/ragged/pkg/dtypes"
	"github.com/ajitpratap0/ragged/pkg/errors"
	"github.com/ajitpratap0/ragged/pkg/types"
)

// ToArrowSchema converts a record-rooted form into an Arrow schema, one
// field per record column. Non-record roots convert with ToArrowField.
func ToArrowSchema(f *RecordForm) (*arrow.Schema, error) {
	fields := make([]arrow.Field, len(f.Contents()))
	for i, content := range f.Contents() {
		name, _ := f.IndexToField(i)
		field, err := ToArrowField(name, content)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrorTypeUnsupported,
				"failed to convert field %s", name)
		}
		fields[i] = field
	}
	return arrow.NewSchema(fields, nil), nil
}

// ToArrowField converts one form into a named Arrow field. Option wrappers
// become field nullability rather than a distinct type.
func ToArrowField(name string, f Form) (arrow.Field, error) {
	nullable := false
	for IsOption(f) || IsIndexed(f) {
		if IsOption(f) {
			nullable = true
		}
		f = contentOf(f)
	}
	dt, err := ToArrowType(f)
	if err != nil {
		return arrow.Field{}, err
	}
	return arrow.Field{Name: name, Type: dt, Nullable: nullable}, nil
}

// ToArrowType converts a form into the equivalent Arrow data type. Indexed
// and option wrappers dissolve into their child; nullability is a field
// property in Arrow, not a type, so it is reported by ToArrowField instead.
func ToArrowType(f Form) (arrow.DataType, error) {
	if isStringLike(f) {
		return stringLikeArrowType(f)
	}

	switch v := f.(type) {
	case *NumpyForm:
		dt, err := primitiveArrowType(v.Primitive())
		if err != nil {
			return nil, err
		}
		for i := len(v.InnerShape()) - 1; i >= 0; i-- {
			dt = arrow.FixedSizeListOf(int32(v.InnerShape()[i]), dt)
		}
		return dt, nil

	case *EmptyForm:
		return arrow.Null, nil

	case *RegularForm:
		if v.Size() == types.UnknownLength {
			return nil, errors.New(errors.ErrorTypeUnsupported,
				"cannot convert a RegularForm of unknown size to Arrow")
		}
		child, err := ToArrowType(v.Content())
		if err != nil {
			return nil, err
		}
		return arrow.FixedSizeListOf(int32(v.Size()), child), nil

	case *ListForm:
		child, err := ToArrowType(v.Content())
		if err != nil {
			return nil, err
		}
		if v.Starts() == dtypes.IndexInt64 {
			return arrow.LargeListOf(child), nil
		}
		return arrow.ListOf(child), nil

	case *ListOffsetForm:
		child, err := ToArrowType(v.Content())
		if err != nil {
			return nil, err
		}
		if v.Offsets() == dtypes.IndexInt64 {
			return arrow.LargeListOf(child), nil
		}
		return arrow.ListOf(child), nil

	case *IndexedForm:
		return ToArrowType(v.Content())

	case *IndexedOptionForm:
		return ToArrowType(v.Content())

	case *ByteMaskedForm:
		return ToArrowType(v.Content())

	case *BitMaskedForm:
		return ToArrowType(v.Content())

	case *UnmaskedForm:
		return ToArrowType(v.Content())

	case *RecordForm:
		fields := make([]arrow.Field, len(v.Contents()))
		for i, content := range v.Contents() {
			name, _ := v.IndexToField(i)
			field, err := ToArrowField(name, content)
			if err != nil {
				return nil, err
			}
			fields[i] = field
		}
		return arrow.StructOf(fields...), nil

	case *UnionForm:
		fields := make([]arrow.Field, len(v.Contents()))
		codes := make([]arrow.UnionTypeCode, len(v.Contents()))
		for i, content := range v.Contents() {
			field, err := ToArrowField(content.Class(), content)
			if err != nil {
				return nil, err
			}
			fields[i] = field
			codes[i] = arrow.UnionTypeCode(i)
		}
		return arrow.DenseUnionOf(fields, codes), nil
	}

	return nil, errors.Newf(errors.ErrorTypeUnsupported,
		"cannot convert form class %q to Arrow", f.Class())
}

// stringLikeArrowType maps string and bytestring flagged lists onto Arrow's
// variable-length binary types, the large variants for 64-bit offsets.
func stringLikeArrowType(f Form) (arrow.DataType, error) {
	large := false
	switch v := f.(type) {
	case *ListForm:
		large = v.Starts() == dtypes.IndexInt64
	case *ListOffsetForm:
		large = v.Offsets() == dtypes.IndexInt64
	}
	if f.Parameter("__array__") == "bytestring" {
		if large {
			return arrow.BinaryTypes.LargeBinary, nil
		}
		return arrow.BinaryTypes.Binary, nil
	}
	if large {
		return arrow.BinaryTypes.LargeString, nil
	}
	return arrow.BinaryTypes.String, nil
}

func primitiveArrowType(p dtypes.Primitive) (arrow.DataType, error) {
	switch p {
	case dtypes.Bool:
		return arrow.FixedWidthTypes.Boolean, nil
	case dtypes.Int8:
		return arrow.PrimitiveTypes.Int8, nil
	case dtypes.UInt8:
		return arrow.PrimitiveTypes.Uint8, nil
	case dtypes.Int16:
		return arrow.PrimitiveTypes.Int16, nil
	case dtypes.UInt16:
		return arrow.PrimitiveTypes.Uint16, nil
	case dtypes.Int32:
		return arrow.PrimitiveTypes.Int32, nil
	case dtypes.UInt32:
		return arrow.PrimitiveTypes.Uint32, nil
	case dtypes.Int64:
		return arrow.PrimitiveTypes.Int64, nil
	case dtypes.UInt64:
		return arrow.PrimitiveTypes.Uint64, nil
	case dtypes.Float16:
		return arrow.FixedWidthTypes.Float16, nil
	case dtypes.Float32:
		return arrow.PrimitiveTypes.Float32, nil
	case dtypes.Float64:
		return arrow.PrimitiveTypes.Float64, nil
	}

	if p.IsDatetime() {
		switch p.TemporalUnit() {
		case "s":
			return arrow.FixedWidthTypes.Timestamp_s, nil
		case "ms":
			return arrow.FixedWidthTypes.Timestamp_ms, nil
		case "us":
			return arrow.FixedWidthTypes.Timestamp_us, nil
		case "ns":
			return arrow.FixedWidthTypes.Timestamp_ns, nil
		}
		return nil, errors.Newf(errors.ErrorTypeUnsupported,
			"Arrow timestamps do not support unit %q", p.TemporalUnit())
	}
	if p.IsTimedelta() {
		switch p.TemporalUnit() {
		case "s":
			return arrow.FixedWidthTypes.Duration_s, nil
		case "ms":
			return arrow.FixedWidthTypes.Duration_ms, nil
		case "us":
			return arrow.FixedWidthTypes.Duration_us, nil
		case "ns":
			return arrow.FixedWidthTypes.Duration_ns, nil
		}
		return nil, errors.Newf(errors.ErrorTypeUnsupported,
			"Arrow durations do not support unit %q", p.TemporalUnit())
	}

	return nil, errors.Newf(errors.ErrorTypeUnsupported,
		"no Arrow equivalent for primitive %q", string(p))
}
