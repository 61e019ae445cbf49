package stream

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/caskhq/cask/errors"
)

// Record is one parsed entry of an archive: a tagged value or a node with
// children. Parse recovers records without any type knowledge; the
// inspector CLI renders them.
type Record struct {
	Value    any
	Tag      string
	Kind     Kind
	Children []Record
}

// Parse reads an entire archive into its record tree.
func Parse(src io.Reader) ([]Record, error) {
	r := NewReader(src)
	return parseChildren(r, false)
}

func parseChildren(r *Reader, nested bool) ([]Record, error) {
	var out []Record
	for {
		k, tag, err := r.header()
		if err == io.EOF {
			if nested {
				return nil, errors.UnexpectedEnd("node")
			}
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		switch k {
		case KindNodeEnd:
			if !nested {
				return nil, errors.InvalidData(errors.PhaseStream, "node-end without node-start")
			}
			return out, nil
		case KindNodeStart:
			children, err := parseChildren(r, true)
			if err != nil {
				return nil, err
			}
			out = append(out, Record{Tag: tag, Kind: k, Children: children})
		default:
			v, err := r.payload(k, tag)
			if err != nil {
				return nil, err
			}
			out = append(out, Record{Tag: tag, Kind: k, Value: v})
		}
	}
}

// payload reads a scalar record body as a dynamically typed value.
func (r *Reader) payload(k Kind, tag string) (any, error) {
	switch k {
	case KindBool:
		b, err := r.fixed(tag, 1)
		if err != nil {
			return nil, err
		}
		return b[0] != 0, nil
	case KindU8:
		b, err := r.fixed(tag, 1)
		if err != nil {
			return nil, err
		}
		return b[0], nil
	case KindU32:
		b, err := r.fixed(tag, 4)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.Uint32(b), nil
	case KindU64:
		b, err := r.fixed(tag, 8)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.Uint64(b), nil
	case KindI64:
		b, err := r.fixed(tag, 8)
		if err != nil {
			return nil, err
		}
		return int64(binary.LittleEndian.Uint64(b)), nil
	case KindF64:
		b, err := r.fixed(tag, 8)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
	case KindString:
		b, err := r.lengthPrefixed(tag)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case KindBytes:
		return r.lengthPrefixed(tag)
	default:
		return nil, errors.InvalidData(errors.PhaseStream, "record kind has no scalar payload")
	}
}
