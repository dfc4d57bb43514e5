package journal

import (
	"bytes"
	"encoding/binary"
	"io"
)

func newHeader() Header {
	return Header{Magic: Magic, Version: Version, Flags: 0}
}

func encodeHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	binary.LittleEndian.PutUint16(buf[6:8], h.Flags)
	copy(buf[8:16], h.Reserved[:])
	return buf
}

func decodeHeader(buf []byte) (Header, error) {
	if len(buf) != HeaderSize {
		return Header{}, newErr(KindInvalidHeader, 0, "short header")
	}
	var h Header
	copy(h.Magic[:], buf[0:4])
	h.Version = binary.LittleEndian.Uint16(buf[4:6])
	h.Flags = binary.LittleEndian.Uint16(buf[6:8])
	copy(h.Reserved[:], buf[8:16])

	if !bytes.Equal(h.Magic[:], Magic[:]) {
		return Header{}, newErr(KindInvalidHeader, 0, "bad magic")
	}
	if h.Version != Version {
		return Header{}, newErr(KindInvalidHeader, 0, "unsupported version")
	}
	if h.Flags != 0 {
		return Header{}, newErr(KindInvalidHeader, 0, "flags must be zero")
	}
	var zero [8]byte
	if h.Reserved != zero {
		return Header{}, newErr(KindInvalidHeader, 0, "reserved bytes must be zero")
	}
	return h, nil
}

func writeHeader(w io.Writer, h Header) error {
	_, err := w.Write(encodeHeader(h))
	if err != nil {
		return wrapIOErr(0, err)
	}
	return nil
}

func readHeader(r io.Reader) (Header, error) {
	buf := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if n < HeaderSize {
			return Header{}, newErr(KindInvalidHeader, 0, "partial header")
		}
		return Header{}, wrapIOErr(0, err)
	}
	return decodeHeader(buf)
}
