// Package journal implements the append-only binary journal format (C7) and
// its reader/writer (C8): a 16-byte header followed by variable-length
// frames, grounded in original_source/crates/northroot-journal/src/frame.rs
// for the exact byte layout and in core/pkg/ledger/ledger.go /
// core/pkg/store/audit_store.go for the append-only handle idiom.
package journal

// Magic is the 4-byte journal file signature.
var Magic = [4]byte{'N', 'R', 'J', '1'}

const (
	// Version is the only journal format version this kernel writes or reads.
	Version uint16 = 0x0001

	// HeaderSize is the fixed byte length of the journal header.
	HeaderSize = 16

	// FrameHeaderSize is the fixed byte length of one frame's header
	// (kind + 3 reserved bytes + u32 length).
	FrameHeaderSize = 8

	// MaxPayload is the largest legal frame payload: 16 MiB.
	MaxPayload = 16 * 1024 * 1024

	// FrameKindEventJSON marks a frame payload as a UTF-8 JSON event object.
	FrameKindEventJSON byte = 0x01
)

// Header is the fixed 16-byte prologue of a journal file.
type Header struct {
	Magic   [4]byte
	Version uint16
	Flags   uint16
	// Reserved must be all-zero; future versions may use it.
	Reserved [8]byte
}
