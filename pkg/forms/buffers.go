package forms

import "github.com/ajitpratap0/ragged/pkg/dtypes"

// GetKeyFunc names the physical buffer for one attribute of one form node,
// e.g. "offsets" of a ListOffsetForm. Callers usually build keys from the
// node's form key.
type GetKeyFunc func(form Form, attribute string) string

// BufferExpectation is one physical array an external buffer provider must
// supply to hydrate an array of this shape.
type BufferExpectation struct {
	Key   string
	DType dtypes.Primitive
}

// ExpectedFromBuffers walks the form and returns the ordered (key, dtype)
// pairs for every index, offset, mask, tag, and data array it owns. Without
// recursive, only the root node's own buffers are reported.
func ExpectedFromBuffers(f Form, getkey GetKeyFunc, recursive bool) []BufferExpectation {
	out := []BufferExpectation{}
	f.expectedFromBuffers(getkey, recursive, &out)
	return out
}

// DefaultBufferKey names buffers "<form_key>-<attribute>", with the
// attribute alone when the node has no form key.
func DefaultBufferKey(form Form, attribute string) string {
	if key := form.FormKey(); key != nil {
		return *key + "-" + attribute
	}
	return attribute
}

// LengthZeroContainer is a buffer container sufficient to hydrate a
// length-0 array of any form: every buffer resolves to the same 8 zero
// bytes, enough for one element of the widest index dtype.
func LengthZeroContainer() map[string][]byte {
	return map[string][]byte{"": make([]byte, 8)}
}

// LengthOneContainer is a buffer container sufficient to hydrate a length-1
// array of any form. A length-1 array needs at most 32 bytes per buffer (a
// 256-bit complex element, or two index arrays of 8 bytes each for list
// starts and stops), and with every index, tag, and mask byte reading zero,
// lists come out empty while options, indexed, and union nodes address the
// first element of their content.
func LengthOneContainer() map[string][]byte {
	return map[string][]byte{"": make([]byte, 32)}
}

// ZeroBufferKey maps every buffer to the shared "" entry of the canned
// containers above.
func ZeroBufferKey(Form, string) string { return "" }
