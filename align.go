package protomsg

import "unsafe"

// Aligned reports whether b starts on a 4-byte boundary. Decode rejects
// unaligned buffers; transports that cannot control where their bytes land
// can check here first and restage through AlignedBuffer.
//
// An empty slice has no element address and counts as aligned.
func Aligned(b []byte) bool {
	if len(b) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&b[0]))%4 == 0
}

// AlignedBuffer returns a zeroed slice of length n whose backing array is
// guaranteed to start on a 4-byte boundary. The guarantee comes from the
// backing allocation being a []uint32, not from any property of the Go
// allocator, so it holds on every platform.
//
// Returns nil when n is not positive.
func AlignedBuffer(n int) []byte {
	if n <= 0 {
		return nil
	}
	words := make([]uint32, Roundup(n, 4)/4)
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), n)
}
