package stream

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/caskhq/cask"
	"github.com/caskhq/cask/errors"
)

// Writer emits tagged binary records. It implements cask.Writer.
type Writer struct {
	w       *bufio.Writer
	scratch [8]byte
	depth   int
}

var _ cask.Writer = (*Writer)(nil)

// NewWriter creates a Writer over w. Output is buffered; call Flush when
// the pass is complete.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Flush writes any buffered records to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// header emits the kind byte and the uvarint-framed tag.
func (w *Writer) header(k Kind, tag string) error {
	if err := w.w.WriteByte(byte(k)); err != nil {
		return err
	}
	if err := w.uvarint(uint64(len(tag))); err != nil {
		return err
	}
	_, err := w.w.WriteString(tag)
	return err
}

func (w *Writer) uvarint(v uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	_, err := w.w.Write(buf[:n])
	return err
}

func (w *Writer) fixed(k Kind, tag string, b []byte) error {
	if err := w.header(k, tag); err != nil {
		return err
	}
	_, err := w.w.Write(b)
	return err
}

func (w *Writer) WriteBool(tag string, v bool) error {
	b := byte(0)
	if v {
		b = 1
	}
	return w.fixed(KindBool, tag, []byte{b})
}

func (w *Writer) WriteUint8(tag string, v uint8) error {
	return w.fixed(KindU8, tag, []byte{v})
}

func (w *Writer) WriteUint32(tag string, v uint32) error {
	binary.LittleEndian.PutUint32(w.scratch[:4], v)
	return w.fixed(KindU32, tag, w.scratch[:4])
}

func (w *Writer) WriteUint64(tag string, v uint64) error {
	binary.LittleEndian.PutUint64(w.scratch[:8], v)
	return w.fixed(KindU64, tag, w.scratch[:8])
}

func (w *Writer) WriteInt64(tag string, v int64) error {
	binary.LittleEndian.PutUint64(w.scratch[:8], uint64(v))
	return w.fixed(KindI64, tag, w.scratch[:8])
}

func (w *Writer) WriteFloat64(tag string, v float64) error {
	binary.LittleEndian.PutUint64(w.scratch[:8], math.Float64bits(v))
	return w.fixed(KindF64, tag, w.scratch[:8])
}

func (w *Writer) WriteString(tag string, v string) error {
	if err := w.header(KindString, tag); err != nil {
		return err
	}
	if err := w.uvarint(uint64(len(v))); err != nil {
		return err
	}
	_, err := w.w.WriteString(v)
	return err
}

func (w *Writer) WriteBytes(tag string, v []byte) error {
	if err := w.header(KindBytes, tag); err != nil {
		return err
	}
	if err := w.uvarint(uint64(len(v))); err != nil {
		return err
	}
	_, err := w.w.Write(v)
	return err
}

// Begin opens a nested structure under tag.
func (w *Writer) Begin(tag string) error {
	if err := w.header(KindNodeStart, tag); err != nil {
		return err
	}
	w.depth++
	return nil
}

// End closes the most recently opened structure.
func (w *Writer) End() error {
	if w.depth == 0 {
		return errors.InvalidData(errors.PhaseStream, "End without matching Begin")
	}
	if err := w.header(KindNodeEnd, ""); err != nil {
		return err
	}
	w.depth--
	return nil
}
