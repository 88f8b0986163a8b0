// Package protomsg decodes a small fixed-layout binary message format
// without copying: an opaque 16-byte identifier, a 32-bit action code, and
// up to MaxParams variable-length parameters.
//
// Wire layout, all integers little-endian, offsets in bytes from the start
// of the buffer:
//
//	id           offset  0, 16 bytes (opaque)
//	action       offset 16,  4 bytes (uint32)
//	param count  offset 20,  2 bytes (uint16, at most MaxParams)
//	padding      offset 22,  2 bytes (reserved, never read)
//	param sizes  offset 24,  4 bytes per parameter (uint32 each)
//	param data   follows the size array, payloads back-to-back
//
// A decoded Message is a read-only view over the caller's slice. It never
// copies parameter bytes and never owns the buffer: every accessor result
// aliases the original slice and is valid only as long as that slice is.
// The view is immutable after construction and safe for concurrent readers
// provided nobody mutates the underlying buffer.
package protomsg

import (
	"encoding/binary"
	"fmt"
	"unsafe"
)

// Layout constants. The public API computes everything from these; there is
// no second copy of the offset math anywhere in the package.
const (
	// OffsetID is the byte offset of the 16-byte message identifier.
	OffsetID = 0
	// OffsetAction is the byte offset of the uint32 action code.
	OffsetAction = 16
	// OffsetParamCount is the byte offset of the uint16 parameter count.
	OffsetParamCount = 20
	// OffsetParams is the byte offset of the parameter size array, and
	// therefore the minimum length of any valid message buffer. The two
	// bytes between OffsetParamCount+2 and here are reserved padding that
	// keeps the size array on a 4-byte boundary.
	OffsetParams = 24

	// IDSize is the length of the message identifier in bytes.
	IDSize = 16
	// MaxParams bounds the parameter count. The cap keeps the offset table
	// a small fixed-size array and bounds per-message decode cost.
	MaxParams = 8

	sizeEntryLen = 4 // one uint32 per parameter in the size array
)

// Message is a decoded, read-only view over a message buffer.
//
// The zero value is not usable; construct one with Decode or DecodeTrusted.
// A Message holds a non-owning reference to the buffer it was decoded from
// and must not outlive it.
type Message struct {
	buf []byte

	// paramCount and sizes are cached at construction: the count is copied
	// out of the buffer, sizes aliases the size-array region of the buffer.
	paramCount uint16
	sizes      []byte

	// offsets[i] is the start of parameter i's payload within buf, filled
	// in only when the view was constructed with precompute.
	offsets     [MaxParams]int
	precomputed bool
}

// Decode validates buf against the wire layout and returns a view over it.
//
// Validation short-circuits at the first failing check, in this order:
// buffer alignment (ErrUnaligned), header length (ErrTruncatedHeader),
// parameter count bound (ErrTooManyParams), size-array length
// (ErrTruncatedSizeArray). With precompute set, Decode additionally walks
// the size array once so that Param runs in constant time; each parameter
// is bounds-checked during the walk and a violation is reported as a
// *ParamBoundsError naming the offending index.
//
// A view constructed without precompute serves the header accessors and
// ParamSize only; Param and ParamsData panic on it rather than silently
// recomputing offsets, so the cost model stays predictable.
//
// Decode never modifies or copies buf. Either it fully succeeds, returning
// a view with every header invariant established, or it fails and returns
// no view at all.
func Decode(buf []byte, precompute bool) (*Message, error) {
	// The format assumes the uint32 fields can be read at their natural
	// alignment. Realigning a noncompliant buffer is the transport's job
	// (see AlignedBuffer); an empty buffer has no element address, so the
	// check is vacuous there and the length check below reports instead.
	if len(buf) > 0 && uintptr(unsafe.Pointer(&buf[0]))%4 != 0 {
		return nil, ErrUnaligned
	}
	if len(buf) < OffsetParams {
		return nil, fmt.Errorf("%w: %d bytes, need %d", ErrTruncatedHeader, len(buf), OffsetParams)
	}

	count := binary.LittleEndian.Uint16(buf[OffsetParamCount:])
	if count > MaxParams {
		return nil, fmt.Errorf("%w: %d, max %d", ErrTooManyParams, count, MaxParams)
	}
	if len(buf) < OffsetParams+int(count)*sizeEntryLen {
		return nil, fmt.Errorf("%w: %d bytes, need %d for %d parameters",
			ErrTruncatedSizeArray, len(buf), OffsetParams+int(count)*sizeEntryLen, count)
	}

	m := newView(buf, count)
	if precompute {
		if err := m.index(true); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// DecodeTrusted returns a view over buf without running any validation.
//
// It exists for buffers whose provenance is already trusted — bytes this
// process produced, or bytes a validating Decode accepted earlier — where
// re-checking per access is pure overhead. On an untrusted or malformed
// buffer its behavior is undefined (accessors will panic or return garbage);
// callers holding bytes from the outside world must use Decode.
func DecodeTrusted(buf []byte, precompute bool) *Message {
	m := newView(buf, binary.LittleEndian.Uint16(buf[OffsetParamCount:]))
	if precompute {
		// A trusted buffer is by definition in-bounds, so the walk cannot
		// fail; index reports errors only in checked mode.
		_ = m.index(false)
	}
	return m
}

// newView caches the fields every accessor needs: the count (copied out)
// and the size-array region (aliased, not copied).
func newView(buf []byte, count uint16) *Message {
	return &Message{
		buf:        buf,
		paramCount: count,
		sizes:      buf[OffsetParams : OffsetParams+int(count)*sizeEntryLen],
	}
}

// index fills the offset table with one forward walk over the size array.
// Parameter data starts immediately after the size array; each parameter's
// offset is the running sum of the sizes before it. In checked mode the
// walk verifies, before recording each offset, that the parameter's payload
// fits inside the buffer. Accumulation is in uint64 so oversized size
// entries cannot wrap the bound check even on 32-bit targets.
func (m *Message) index(checked bool) error {
	offset := uint64(OffsetParams) + uint64(m.paramCount)*sizeEntryLen
	for i := 0; i < int(m.paramCount); i++ {
		size := uint64(m.sizeAt(i))
		if checked && offset+size > uint64(len(m.buf)) {
			return &ParamBoundsError{Index: i, End: offset + size, BufLen: len(m.buf)}
		}
		m.offsets[i] = int(offset)
		offset += size
	}
	m.precomputed = true
	return nil
}

// sizeAt reads size-array entry i. Callers guarantee i < paramCount.
func (m *Message) sizeAt(i int) uint32 {
	return binary.LittleEndian.Uint32(m.sizes[i*sizeEntryLen:])
}

// ID returns the 16-byte message identifier as a sub-slice of the source
// buffer. The bytes are opaque to this package.
func (m *Message) ID() []byte {
	return m.buf[OffsetID : OffsetID+IDSize]
}

// Action returns the 32-bit action code. Interpreting it is the caller's
// business; see Dispatcher for the usual shape.
func (m *Message) Action() uint32 {
	return binary.LittleEndian.Uint32(m.buf[OffsetAction:])
}

// ParamCount returns the number of parameters carried by the message.
func (m *Message) ParamCount() uint16 {
	return m.paramCount
}

// ParamSize returns the declared payload length of parameter i.
//
// i must be less than ParamCount; violating that is a caller bug against an
// already-validated view and panics. Misuse of every accessor in this
// package panics rather than returning an error, the same contract Go's
// slice indexing applies after a length check.
func (m *Message) ParamSize(i int) uint32 {
	if i < 0 || i >= int(m.paramCount) {
		panic(fmt.Sprintf("protomsg: parameter index %d out of range [0,%d)", i, m.paramCount))
	}
	return m.sizeAt(i)
}

// Param returns parameter i's payload as a sub-slice of the source buffer,
// without copying.
//
// Panics if i is not less than ParamCount, or if the view was constructed
// without precomputed offsets (see Decode).
func (m *Message) Param(i int) []byte {
	if i < 0 || i >= int(m.paramCount) {
		panic(fmt.Sprintf("protomsg: parameter index %d out of range [0,%d)", i, m.paramCount))
	}
	if !m.precomputed {
		panic("protomsg: parameter access on a view decoded without precomputed offsets")
	}
	off := m.offsets[i]
	return m.buf[off : off+int(m.sizeAt(i))]
}

// ParamsData returns the span covering every parameter payload, from the
// start of the first to the end of the last, or nil when the message
// carries no parameters. Trailing bytes after the last parameter are not
// included.
//
// Panics if the parameter count is non-zero and the view was constructed
// without precomputed offsets.
func (m *Message) ParamsData() []byte {
	if m.paramCount == 0 {
		return nil
	}
	if !m.precomputed {
		panic("protomsg: parameter access on a view decoded without precomputed offsets")
	}
	last := int(m.paramCount) - 1
	return m.buf[m.offsets[0] : m.offsets[last]+int(m.sizeAt(last))]
}
