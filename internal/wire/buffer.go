package wire

import (
	"encoding/binary"
	"fmt"
)

// ErrShortBuffer is returned when a read would run past the end of the
// payload. Callers should treat it as a corrupt or truncated snapshot.
var ErrShortBuffer = fmt.Errorf("wire: short buffer")

// ErrStringTooLong is returned for strings the format cannot represent.
// Writer and Reader enforce the same limit so every encodable payload
// decodes.
var ErrStringTooLong = fmt.Errorf("wire: string exceeds format limit")

// maxStringLen bounds string payloads. On the read side it also guards
// against a corrupted length prefix allocating an absurd amount of memory
// before the bounds check fires.
const maxStringLen = 1 << 20

// Writer accumulates a little-endian binary payload. The first rejected
// write sticks as an error reported by Err; later writes are ignored.
type Writer struct {
	data []byte
	err  error
}

// NewWriter creates an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// PutUint32 appends a fixed-width u32.
func (w *Writer) PutUint32(v uint32) {
	if w.err != nil {
		return
	}
	w.data = binary.LittleEndian.AppendUint32(w.data, v)
}

// PutUint64 appends a fixed-width u64.
func (w *Writer) PutUint64(v uint64) {
	if w.err != nil {
		return
	}
	w.data = binary.LittleEndian.AppendUint64(w.data, v)
}

// PutString appends a u32 length prefix followed by the raw bytes. Strings
// over the format limit are rejected, so anything written also reads back.
func (w *Writer) PutString(s string) {
	if w.err != nil {
		return
	}
	if len(s) > maxStringLen {
		w.err = fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(s))
		return
	}
	w.PutUint32(uint32(len(s)))
	w.data = append(w.data, s...)
}

// Err returns the first write rejected by the format, or nil.
func (w *Writer) Err() error {
	return w.err
}

// Bytes returns the accumulated payload. The returned slice aliases the
// writer's buffer; callers must not append to the writer afterwards.
func (w *Writer) Bytes() []byte {
	return w.data
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.data)
}

// Reader decodes a payload produced by Writer. Every method validates the
// remaining length before consuming bytes.
type Reader struct {
	data []byte
	off  int
}

// NewReader creates a reader over the supplied payload.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Uint32 consumes a fixed-width u32.
func (r *Reader) Uint32() (uint32, error) {
	if r.off+4 > len(r.data) {
		return 0, fmt.Errorf("%w: need 4 bytes at offset %d of %d", ErrShortBuffer, r.off, len(r.data))
	}
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v, nil
}

// Uint64 consumes a fixed-width u64.
func (r *Reader) Uint64() (uint64, error) {
	if r.off+8 > len(r.data) {
		return 0, fmt.Errorf("%w: need 8 bytes at offset %d of %d", ErrShortBuffer, r.off, len(r.data))
	}
	v := binary.LittleEndian.Uint64(r.data[r.off:])
	r.off += 8
	return v, nil
}

// String consumes a u32 length prefix and the following bytes.
func (r *Reader) String() (string, error) {
	length, err := r.Uint32()
	if err != nil {
		return "", err
	}
	if length > maxStringLen {
		return "", fmt.Errorf("%w: %d bytes", ErrStringTooLong, length)
	}
	if r.off+int(length) > len(r.data) {
		return "", fmt.Errorf("%w: need %d bytes at offset %d of %d", ErrShortBuffer, length, r.off, len(r.data))
	}
	s := string(r.data[r.off : r.off+int(length)])
	r.off += int(length)
	return s, nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}
