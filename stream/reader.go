package stream

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/caskhq/cask"
	"github.com/caskhq/cask/errors"
)

// maxRecordLen bounds any single length-prefixed payload (tag, string, or
// bytes). A corrupt or hostile archive can claim any uvarint length; without
// the bound a few bytes of input could demand an arbitrarily large
// allocation before the first read fails.
const maxRecordLen = 1 << 30

// Reader consumes tagged binary records in write order. It implements
// cask.Reader.
type Reader struct {
	r       *bufio.Reader
	scratch [8]byte
	depth   int
}

var _ cask.Reader = (*Reader)(nil)

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// header reads the next record's kind byte and tag. A clean end of input
// before the kind byte surfaces as io.EOF so callers that expect more
// records can report it, while Parse can treat it as the end of the
// archive.
func (r *Reader) header() (Kind, string, error) {
	kb, err := r.r.ReadByte()
	if err == io.EOF {
		return KindInvalid, "", io.EOF
	}
	if err != nil {
		return KindInvalid, "", errors.UnexpectedEnd("record header")
	}
	k := Kind(kb)
	if k == KindInvalid || int(k) >= len(kindNames) {
		return KindInvalid, "", errors.InvalidData(errors.PhaseStream, "unknown record kind")
	}
	tag, err := r.lengthPrefixed("tag")
	if err != nil {
		return KindInvalid, "", err
	}
	return k, string(tag), nil
}

// expect reads the next header and checks it against the requested kind
// and tag.
func (r *Reader) expect(k Kind, tag string) error {
	got, gotTag, err := r.header()
	if err == io.EOF {
		return errors.UnexpectedEnd("record header")
	}
	if err != nil {
		return err
	}
	if gotTag != tag {
		return errors.TagMismatch(tag, gotTag)
	}
	if got != k {
		return errors.New(errors.PhaseStream, errors.KindInvalidData).
			Detail("tag %q holds a %s record, want %s", tag, got, k).
			Build()
	}
	return nil
}

func (r *Reader) lengthPrefixed(what string) ([]byte, error) {
	n, err := binary.ReadUvarint(r.r)
	if err != nil {
		return nil, errors.UnexpectedEnd(what)
	}
	if n > maxRecordLen {
		return nil, errors.New(errors.PhaseStream, errors.KindInvalidData).
			Detail("length prefix %d for %s exceeds the %d-byte record limit", n, what, maxRecordLen).
			Build()
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r.r, b); err != nil {
		return nil, errors.UnexpectedEnd(what)
	}
	return b, nil
}

func (r *Reader) fixed(tag string, n int) ([]byte, error) {
	if _, err := io.ReadFull(r.r, r.scratch[:n]); err != nil {
		return nil, errors.UnexpectedEnd(tag)
	}
	return r.scratch[:n], nil
}

func (r *Reader) ReadBool(tag string) (bool, error) {
	if err := r.expect(KindBool, tag); err != nil {
		return false, err
	}
	b, err := r.fixed(tag, 1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func (r *Reader) ReadUint8(tag string) (uint8, error) {
	if err := r.expect(KindU8, tag); err != nil {
		return 0, err
	}
	b, err := r.fixed(tag, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadUint32(tag string) (uint32, error) {
	if err := r.expect(KindU32, tag); err != nil {
		return 0, err
	}
	b, err := r.fixed(tag, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadUint64(tag string) (uint64, error) {
	if err := r.expect(KindU64, tag); err != nil {
		return 0, err
	}
	b, err := r.fixed(tag, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) ReadInt64(tag string) (int64, error) {
	if err := r.expect(KindI64, tag); err != nil {
		return 0, err
	}
	b, err := r.fixed(tag, 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

func (r *Reader) ReadFloat64(tag string) (float64, error) {
	if err := r.expect(KindF64, tag); err != nil {
		return 0, err
	}
	b, err := r.fixed(tag, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

func (r *Reader) ReadString(tag string) (string, error) {
	if err := r.expect(KindString, tag); err != nil {
		return "", err
	}
	b, err := r.lengthPrefixed(tag)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *Reader) ReadBytes(tag string) ([]byte, error) {
	if err := r.expect(KindBytes, tag); err != nil {
		return nil, err
	}
	return r.lengthPrefixed(tag)
}

// Enter descends into the nested structure written under tag.
func (r *Reader) Enter(tag string) error {
	if err := r.expect(KindNodeStart, tag); err != nil {
		return err
	}
	r.depth++
	return nil
}

// Leave consumes the structure terminator and ascends.
func (r *Reader) Leave() error {
	if r.depth == 0 {
		return errors.InvalidData(errors.PhaseStream, "Leave without matching Enter")
	}
	if err := r.expect(KindNodeEnd, ""); err != nil {
		return err
	}
	r.depth--
	return nil
}
