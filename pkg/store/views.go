package store

import (
	"errors"
	"fmt"
	"io"

	"github.com/Northroot-Labs/northroot-kernel/pkg/events"
	"github.com/Northroot-Labs/northroot-kernel/pkg/ids"
)

// ResolveAuth sequentially scans reader for the AuthorizationEvent whose
// event_id equals digest. No index is maintained; this is linear in journal
// length, per spec.md §4.6.
func ResolveAuth(reader StoreReader, digest ids.Digest) (*events.AuthorizationEvent, error) {
	for {
		raw, err := reader.ReadNext()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrEventNotFound
			}
			return nil, fmt.Errorf("store: resolve_auth: %w", err)
		}
		ev, err := events.Parse(raw)
		if err != nil {
			continue
		}
		auth, ok := ev.(*events.AuthorizationEvent)
		if !ok {
			continue
		}
		if auth.EventID == digest {
			return auth, nil
		}
	}
}

// ExecutionsForAuth sequentially scans reader for every ExecutionEvent
// citing digest as its auth_event_id.
func ExecutionsForAuth(reader StoreReader, digest ids.Digest) ([]*events.ExecutionEvent, error) {
	var out []*events.ExecutionEvent
	for {
		raw, err := reader.ReadNext()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("store: executions_for_auth: %w", err)
		}
		ev, err := events.Parse(raw)
		if err != nil {
			continue
		}
		exec, ok := ev.(*events.ExecutionEvent)
		if !ok {
			continue
		}
		if exec.AuthEventID == digest {
			out = append(out, exec)
		}
	}
}
