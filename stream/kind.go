package stream

// Kind identifies the payload shape of one record.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindU8
	KindU32
	KindU64
	KindI64
	KindF64
	KindString
	KindBytes
	KindNodeStart
	KindNodeEnd
)

var kindNames = [...]string{
	KindInvalid:   "invalid",
	KindBool:      "bool",
	KindU8:        "u8",
	KindU32:       "u32",
	KindU64:       "u64",
	KindI64:       "i64",
	KindF64:       "f64",
	KindString:    "string",
	KindBytes:     "bytes",
	KindNodeStart: "node-start",
	KindNodeEnd:   "node-end",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}
