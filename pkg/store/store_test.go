package store

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Northroot-Labs/northroot-kernel/pkg/journal"
)

func TestJournalWriterReaderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "j.nrj")
	w, err := journal.OpenWriter(path, journal.OpenOptions{Create: true})
	require.NoError(t, err)
	sw := NewJournalWriter(w)
	require.NoError(t, sw.Append([]byte(`{"event_type":"a"}`)))
	require.NoError(t, sw.Append([]byte(`{"event_type":"b"}`)))
	require.NoError(t, sw.Finish())

	r, err := journal.OpenReader(path, journal.Strict)
	require.NoError(t, err)
	defer r.Close()
	sr := NewJournalReader(r)

	ev1, err := sr.ReadNext()
	require.NoError(t, err)
	assert.Contains(t, string(ev1), `"a"`)

	ev2, err := sr.ReadNext()
	require.NoError(t, err)
	assert.Contains(t, string(ev2), `"b"`)

	_, err = sr.ReadNext()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFilteredReaderByEventType(t *testing.T) {
	m := NewMemoryStore()
	require.NoError(t, m.Append([]byte(`{"event_type":"authorization"}`)))
	require.NoError(t, m.Append([]byte(`{"event_type":"execution"}`)))
	require.NoError(t, m.Append([]byte(`{"event_type":"authorization"}`)))

	fr := &FilteredReader{Reader: m.NewReader(), Filter: ByEventType("authorization")}

	count := 0
	for {
		ev, err := fr.ReadNext()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		assert.Contains(t, string(ev), "authorization")
		count++
	}
	assert.Equal(t, 2, count)
}

func TestFilterAndOr(t *testing.T) {
	combined := And(ByEventType("execution"), ByPrincipalID("service:a"))
	ok, err := combined.Matches([]byte(`{"event_type":"execution","principal_id":"service:a"}`))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = combined.Matches([]byte(`{"event_type":"execution","principal_id":"service:b"}`))
	require.NoError(t, err)
	assert.False(t, ok)

	either := Or(ByEventType("checkpoint"), ByEventType("attestation"))
	ok, err = either.Matches([]byte(`{"event_type":"attestation"}`))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStoreConcurrentAppendAndRead(t *testing.T) {
	m := NewMemoryStore()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			_ = m.Append([]byte(`{"event_type":"x"}`))
		}
		close(done)
	}()
	for i := 0; i < 50; i++ {
		_ = m.Len()
	}
	<-done
	assert.Equal(t, 50, m.Len())
}
