package types

import (
	"strconv"
	"strings"

	"github.com/ajitpratap0/ragged/pkg/errors"
)

// RecordType is the semantic type of a record. A nil fields slice means the
// record is a tuple whose fields are addressed positionally.
type RecordType struct {
	meta
	contents []Type
	fields   []string
}

// NewRecordType creates a RecordType. fields may be nil (tuple mode) or must
// match contents in length.
func NewRecordType(contents []Type, fields []string, parameters map[string]interface{}) (*RecordType, error) {
	for i, content := range contents {
		if content == nil {
			return nil, errors.Newf(errors.ErrorTypeValidation,
				"RecordType all 'contents' must be Types, content %d is nil", i)
		}
	}
	if fields != nil && len(fields) != len(contents) {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"RecordType 'fields' length (%d) must match 'contents' length (%d)",
			len(fields), len(contents))
	}
	return &RecordType{meta{parameters}, contents, fields}, nil
}

// Contents returns the field types in order.
func (t *RecordType) Contents() []Type { return t.contents }

// IsTuple reports whether fields are addressed positionally.
func (t *RecordType) IsTuple() bool { return t.fields == nil }

// Fields returns the field names; positional names ("0", "1", ...) for
// tuples.
func (t *RecordType) Fields() []string {
	if t.fields != nil {
		return t.fields
	}
	fields := make([]string, len(t.contents))
	for i := range t.contents {
		fields[i] = strconv.Itoa(i)
	}
	return fields
}

func (t *RecordType) Equal(other Type) bool {
	o, ok := other.(*RecordType)
	if !ok ||
		t.IsTuple() != o.IsTuple() ||
		len(t.contents) != len(o.contents) ||
		!typeParametersEqual(t.parameters, o.parameters) {
		return false
	}
	if t.IsTuple() {
		for i := range t.contents {
			if !t.contents[i].Equal(o.contents[i]) {
				return false
			}
		}
		return true
	}
	// Named records compare field-by-name, ignoring order.
	theirs := make(map[string]Type, len(o.contents))
	for i, field := range o.fields {
		theirs[field] = o.contents[i]
	}
	for i, field := range t.fields {
		content, ok := theirs[field]
		if !ok || !t.contents[i].Equal(content) {
			return false
		}
	}
	return true
}

func (t *RecordType) String() string {
	var sb strings.Builder
	if name, ok := t.Parameter("__record__").(string); ok {
		sb.WriteString(name)
		sb.WriteString("[")
		t.writeContents(&sb)
		sb.WriteString("]")
		return sb.String()
	}
	if t.IsTuple() {
		sb.WriteString("(")
		t.writeContents(&sb)
		sb.WriteString(")")
	} else {
		sb.WriteString("{")
		t.writeContents(&sb)
		sb.WriteString("}")
	}
	return sb.String()
}

func (t *RecordType) writeContents(sb *strings.Builder) {
	for i, content := range t.contents {
		if i > 0 {
			sb.WriteString(", ")
		}
		if !t.IsTuple() {
			sb.WriteString(t.fields[i])
			sb.WriteString(": ")
		}
		sb.WriteString(content.String())
	}
}
