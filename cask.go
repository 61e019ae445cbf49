package cask

// Writer is the save-side half of the channel: an ordered, tagged sink for
// primitive values and nested structures. Implementations decide the byte
// framing; callers only guarantee that reads later happen in the same order
// with the same tags.
type Writer interface {
	WriteBool(tag string, v bool) error
	WriteUint8(tag string, v uint8) error
	WriteUint32(tag string, v uint32) error
	WriteUint64(tag string, v uint64) error
	WriteInt64(tag string, v int64) error
	WriteFloat64(tag string, v float64) error
	WriteString(tag string, v string) error
	WriteBytes(tag string, v []byte) error

	// Begin opens a nested structure under tag; End closes the most
	// recently opened structure.
	Begin(tag string) error
	End() error
}

// Reader is the load-side half of the channel. Reads must occur in the
// exact order the matching writes occurred, tag for tag.
type Reader interface {
	ReadBool(tag string) (bool, error)
	ReadUint8(tag string) (uint8, error)
	ReadUint32(tag string) (uint32, error)
	ReadUint64(tag string) (uint64, error)
	ReadInt64(tag string) (int64, error)
	ReadFloat64(tag string) (float64, error)
	ReadString(tag string) (string, error)
	ReadBytes(tag string) ([]byte, error)

	// Enter descends into the nested structure written under tag; Leave
	// ascends back out, consuming any structure terminator.
	Enter(tag string) error
	Leave() error
}
