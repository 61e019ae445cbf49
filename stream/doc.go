// Package stream implements the cask channel contracts over a tagged,
// little-endian binary record format.
//
// # Record Format
//
// Every record starts with a kind byte and a uvarint-framed tag:
//
//	kind: u8
//	tag:  uvarint length + bytes
//	payload: per kind (see below)
//
//	Kind        Payload
//	─────────────────────────────
//	bool        1 byte (0|1)
//	u8          1 byte
//	u32         4 bytes LE
//	u64         8 bytes LE
//	i64         8 bytes LE (two's complement)
//	f64         8 bytes LE (IEEE 754 bits)
//	string      uvarint length + bytes
//	bytes       uvarint length + bytes
//	node-start  none
//	node-end    none (empty tag)
//
// # Ordering
//
// The format is strictly ordered: each read must name the exact tag the
// matching write used, in the same position. A skewed read fails with a
// tag_mismatch error, a record of the wrong kind with invalid_data, and a
// truncated stream with unexpected_end.
//
// # Inspection
//
// The format is self-describing, so Parse can recover the full record tree
// of an archive without any type knowledge. The cmd/inspect CLI builds on
// this.
//
// # Buffering
//
// Writer buffers internally; call Flush before handing the underlying
// bytes to a Reader or to disk.
package stream
