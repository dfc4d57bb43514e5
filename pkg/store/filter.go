package store

import "encoding/json"

// EventFilter is a predicate over raw event JSON. Built-ins below compose
// via And/Or; implementations may precompile a composed filter into a
// single closure for cache locality, per spec.md §9.
type EventFilter interface {
	Matches(eventJSON []byte) (bool, error)
}

type filterFunc func(eventJSON []byte) (bool, error)

func (f filterFunc) Matches(eventJSON []byte) (bool, error) { return f(eventJSON) }

func peekString(eventJSON []byte, field string) (string, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(eventJSON, &m); err != nil {
		return "", err
	}
	raw, ok := m[field]
	if !ok {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

// ByEventType matches events whose event_type equals want.
func ByEventType(want string) EventFilter {
	return filterFunc(func(eventJSON []byte) (bool, error) {
		got, err := peekString(eventJSON, "event_type")
		if err != nil {
			return false, err
		}
		return got == want, nil
	})
}

// ByPrincipalID matches events whose principal_id equals want exactly.
func ByPrincipalID(want string) EventFilter {
	return filterFunc(func(eventJSON []byte) (bool, error) {
		got, err := peekString(eventJSON, "principal_id")
		if err != nil {
			return false, err
		}
		return got == want, nil
	})
}

// ByOccurredAtRange matches events whose occurred_at falls in [start, end]
// using string comparison, valid under the Timestamp grammar's fixed-width
// prefix (lexicographic order equals chronological order).
func ByOccurredAtRange(start, end string) EventFilter {
	return filterFunc(func(eventJSON []byte) (bool, error) {
		got, err := peekString(eventJSON, "occurred_at")
		if err != nil {
			return false, err
		}
		return got >= start && got <= end, nil
	})
}

// ByEventID matches the event whose event_id.b64 equals want.
func ByEventID(want string) EventFilter {
	return filterFunc(func(eventJSON []byte) (bool, error) {
		var m struct {
			EventID struct {
				B64 string `json:"b64"`
			} `json:"event_id"`
		}
		if err := json.Unmarshal(eventJSON, &m); err != nil {
			return false, err
		}
		return m.EventID.B64 == want, nil
	})
}

// And matches when every filter matches.
func And(filters ...EventFilter) EventFilter {
	return filterFunc(func(eventJSON []byte) (bool, error) {
		for _, f := range filters {
			ok, err := f.Matches(eventJSON)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	})
}

// Or matches when any filter matches.
func Or(filters ...EventFilter) EventFilter {
	return filterFunc(func(eventJSON []byte) (bool, error) {
		for _, f := range filters {
			ok, err := f.Matches(eventJSON)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	})
}

// FilteredReader wraps a StoreReader and yields only events matching Filter.
type FilteredReader struct {
	Reader StoreReader
	Filter EventFilter
}

// ReadNext advances the underlying reader until a matching event is found
// or the stream ends.
func (fr *FilteredReader) ReadNext() (json.RawMessage, error) {
	for {
		ev, err := fr.Reader.ReadNext()
		if err != nil {
			return nil, err
		}
		ok, err := fr.Filter.Matches(ev)
		if err != nil {
			return nil, err
		}
		if ok {
			return ev, nil
		}
	}
}
