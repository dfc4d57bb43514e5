package journal

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"log/slog"
	"os"
)

// OpenOptions configures Open for writing.
type OpenOptions struct {
	// Create creates the file (and writes a fresh header) if it does not
	// exist or is empty.
	Create bool
	// Append positions the writer at the end of an existing valid journal.
	// Without Append, an existing journal is truncated back to just its
	// header (losing prior records) -- callers almost always want Append.
	Append bool
	// Sync fsyncs the file after every AppendFrame/AppendEvent and on Finish.
	Sync bool
}

// Writer appends frames to a journal file. It never modifies prior records;
// the only operations are Append*, and Finish.
type Writer struct {
	file *os.File
	opts OpenOptions
}

// OpenWriter implements spec.md §4.5.2's open contract.
func OpenWriter(path string, opts OpenOptions) (*Writer, error) {
	flag := os.O_RDWR
	if opts.Create {
		flag |= os.O_CREATE
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, wrapIOErr(0, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, wrapIOErr(0, err)
	}

	switch {
	case info.Size() == 0:
		if err := writeHeader(f, newHeader()); err != nil {
			_ = f.Close()
			return nil, err
		}
	case info.Size() < HeaderSize:
		_ = f.Close()
		return nil, newErr(KindFileNotEmpty, 0, "file is non-empty but shorter than header")
	default:
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			_ = f.Close()
			return nil, wrapIOErr(0, err)
		}
		if _, err := readHeader(f); err != nil {
			_ = f.Close()
			return nil, err
		}
		if opts.Append {
			if _, err := f.Seek(0, io.SeekEnd); err != nil {
				_ = f.Close()
				return nil, wrapIOErr(0, err)
			}
		} else {
			if err := f.Truncate(HeaderSize); err != nil {
				_ = f.Close()
				return nil, wrapIOErr(0, err)
			}
			if _, err := f.Seek(HeaderSize, io.SeekStart); err != nil {
				_ = f.Close()
				return nil, wrapIOErr(0, err)
			}
		}
	}

	return &Writer{file: f, opts: opts}, nil
}

// AppendFrame writes one frame of the given kind and payload, contiguous
// header+payload, per spec.md §4.5.1's record layout.
func (w *Writer) AppendFrame(kind byte, payload []byte) error {
	if len(payload) > MaxPayload {
		return newErr(KindPayloadTooLarge, 0, "payload exceeds MaxPayload")
	}

	header := make([]byte, FrameHeaderSize)
	header[0] = kind
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(payload)))

	if _, err := w.file.Write(header); err != nil {
		return wrapIOErr(0, err)
	}
	if _, err := w.file.Write(payload); err != nil {
		return wrapIOErr(0, err)
	}
	if w.opts.Sync {
		if err := w.file.Sync(); err != nil {
			return wrapIOErr(0, err)
		}
	}
	return nil
}

// AppendEvent serializes v to UTF-8 JSON and appends it as an EventJSON
// frame.
func (w *Writer) AppendEvent(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return newErr(KindJsonParse, 0, err.Error())
	}
	if err := w.AppendFrame(FrameKindEventJSON, payload); err != nil {
		return err
	}
	slog.Debug("journal: appended event", "bytes", len(payload))
	return nil
}

// Finish flushes (fsyncing if configured) and closes the underlying file.
// The writer is append-only: Finish never rewrites prior records.
func (w *Writer) Finish() error {
	if w.opts.Sync {
		if err := w.file.Sync(); err != nil {
			return wrapIOErr(0, err)
		}
	}
	return w.file.Close()
}
