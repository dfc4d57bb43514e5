// Package store implements the backend-agnostic store layer (C9):
// StoreReader/StoreWriter interfaces over pkg/journal, composable event
// filters, and the resolve_auth/executions_for_auth view helpers. Grounded
// in core/pkg/store/audit_store.go's sentinel-error, sequential-scan style.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Northroot-Labs/northroot-kernel/pkg/journal"
)

// ErrEventNotFound is returned by views that scan for a specific event and
// reach end of stream without finding it.
var ErrEventNotFound = errors.New("store: event not found")

// StoreWriter appends raw event JSON to a backend.
type StoreWriter interface {
	Append(eventJSON []byte) error
	Flush() error
	Finish() error
}

// StoreReader sequentially yields raw event JSON. ReadNext returns io.EOF
// when the stream is exhausted.
type StoreReader interface {
	ReadNext() (json.RawMessage, error)
}

// JournalWriter adapts a *journal.Writer to StoreWriter.
type JournalWriter struct {
	w *journal.Writer
}

// NewJournalWriter wraps w.
func NewJournalWriter(w *journal.Writer) *JournalWriter { return &JournalWriter{w: w} }

func (jw *JournalWriter) Append(eventJSON []byte) error {
	if !json.Valid(eventJSON) {
		return fmt.Errorf("store: append: %w", errors.New("invalid json"))
	}
	return jw.w.AppendFrame(journal.FrameKindEventJSON, eventJSON)
}

// Flush is a no-op: journal.Writer writes are unbuffered at the OS level;
// durability beyond that is controlled by the Sync option at Open time.
func (jw *JournalWriter) Flush() error { return nil }

func (jw *JournalWriter) Finish() error { return jw.w.Finish() }

// JournalReader adapts a *journal.Reader to StoreReader.
type JournalReader struct {
	r *journal.Reader
}

// NewJournalReader wraps r.
func NewJournalReader(r *journal.Reader) *JournalReader { return &JournalReader{r: r} }

func (jr *JournalReader) ReadNext() (json.RawMessage, error) {
	return jr.r.ReadEvent()
}
