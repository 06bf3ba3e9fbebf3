package forms

// GeneratedCompatibility reports whether other could have been produced by a
// code generator targeting f's layout: same variant, same physical encodings,
// exactly equal parameter bags, and compatible children. Records compare
// field sets without regard to order. A nil other is compatible with
// anything, standing for "no constraint".
func GeneratedCompatibility(f, other Form) bool {
	if other == nil {
		return true
	}
	if !ParametersEqual(f.Parameters(), other.Parameters()) {
		return false
	}

	switch v := f.(type) {
	case *NumpyForm:
		o, ok := other.(*NumpyForm)
		if !ok || v.Primitive() != o.Primitive() {
			return false
		}
		if len(v.InnerShape()) != len(o.InnerShape()) {
			return false
		}
		for i, size := range v.InnerShape() {
			if size != o.InnerShape()[i] {
				return false
			}
		}
		return true

	case *EmptyForm:
		_, ok := other.(*EmptyForm)
		return ok

	case *RegularForm:
		o, ok := other.(*RegularForm)
		return ok && v.Size() == o.Size() &&
			GeneratedCompatibility(v.Content(), o.Content())

	case *ListForm:
		o, ok := other.(*ListForm)
		return ok && v.Starts() == o.Starts() && v.Stops() == o.Stops() &&
			GeneratedCompatibility(v.Content(), o.Content())

	case *ListOffsetForm:
		o, ok := other.(*ListOffsetForm)
		return ok && v.Offsets() == o.Offsets() &&
			GeneratedCompatibility(v.Content(), o.Content())

	case *IndexedForm:
		o, ok := other.(*IndexedForm)
		return ok && v.Index() == o.Index() &&
			GeneratedCompatibility(v.Content(), o.Content())

	case *IndexedOptionForm:
		o, ok := other.(*IndexedOptionForm)
		return ok && v.Index() == o.Index() &&
			GeneratedCompatibility(v.Content(), o.Content())

	case *ByteMaskedForm:
		o, ok := other.(*ByteMaskedForm)
		return ok && v.Mask() == o.Mask() && v.ValidWhen() == o.ValidWhen() &&
			GeneratedCompatibility(v.Content(), o.Content())

	case *BitMaskedForm:
		o, ok := other.(*BitMaskedForm)
		return ok && v.Mask() == o.Mask() && v.ValidWhen() == o.ValidWhen() &&
			v.LsbOrder() == o.LsbOrder() &&
			GeneratedCompatibility(v.Content(), o.Content())

	case *UnmaskedForm:
		o, ok := other.(*UnmaskedForm)
		return ok && GeneratedCompatibility(v.Content(), o.Content())

	case *RecordForm:
		o, ok := other.(*RecordForm)
		if !ok || v.IsTuple() != o.IsTuple() {
			return false
		}
		if len(v.Contents()) != len(o.Contents()) {
			return false
		}
		for _, field := range v.Fields() {
			if !o.HasField(field) {
				return false
			}
			mine, _ := v.Content(field)
			theirs, _ := o.Content(field)
			if !GeneratedCompatibility(mine, theirs) {
				return false
			}
		}
		return true

	case *UnionForm:
		o, ok := other.(*UnionForm)
		if !ok || v.Tags() != o.Tags() || v.Index() != o.Index() {
			return false
		}
		if len(v.Contents()) != len(o.Contents()) {
			return false
		}
		for i, content := range v.Contents() {
			if !GeneratedCompatibility(content, o.Contents()[i]) {
				return false
			}
		}
		return true
	}

	return false
}
