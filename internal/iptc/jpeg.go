package iptc

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	markerSOI   = 0xD8
	markerEOI   = 0xD9
	markerSOS   = 0xDA
	markerAPP0  = 0xE0
	markerAPP13 = 0xED
	markerAPP15 = 0xEF
	markerCOM   = 0xFE

	maxSegmentPayload = 0xFFFF - 2
)

// ErrNotJPEG is returned when data does not start with a JPEG SOI marker.
var ErrNotJPEG = errors.New("iptc: not a JPEG stream")

type segment struct {
	marker  byte
	payload []byte
}

func (s segment) standalone() bool {
	return s.marker == 0x01 || (s.marker >= 0xD0 && s.marker <= 0xD7)
}

// splitJPEG returns the marker segments that precede the scan data and the
// remaining bytes starting at SOS (or EOI).
func splitJPEG(data []byte) ([]segment, []byte, error) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != markerSOI {
		return nil, nil, ErrNotJPEG
	}
	var segments []segment
	pos := 2
	for {
		if pos >= len(data) {
			return segments, nil, nil
		}
		if data[pos] != 0xFF {
			return nil, nil, fmt.Errorf("iptc: expected marker at offset %d", pos)
		}
		start := pos
		for pos < len(data) && data[pos] == 0xFF {
			pos++
		}
		if pos >= len(data) {
			return nil, nil, fmt.Errorf("iptc: truncated marker at offset %d", start)
		}
		marker := data[pos]
		pos++
		if marker == markerSOS || marker == markerEOI {
			return segments, data[start:], nil
		}
		seg := segment{marker: marker}
		if seg.standalone() {
			segments = append(segments, seg)
			continue
		}
		if pos+2 > len(data) {
			return nil, nil, fmt.Errorf("iptc: truncated length for marker 0x%02X", marker)
		}
		length := int(binary.BigEndian.Uint16(data[pos:]))
		if length < 2 || pos+length > len(data) {
			return nil, nil, fmt.Errorf("iptc: invalid length %d for marker 0x%02X", length, marker)
		}
		seg.payload = data[pos+2 : pos+length]
		segments = append(segments, seg)
		pos += length
	}
}

func joinJPEG(segments []segment, rest []byte) ([]byte, error) {
	size := 2 + len(rest)
	for _, seg := range segments {
		size += 4 + len(seg.payload)
	}
	out := make([]byte, 0, size)
	out = append(out, 0xFF, markerSOI)
	for _, seg := range segments {
		out = append(out, 0xFF, seg.marker)
		if seg.standalone() {
			continue
		}
		if len(seg.payload) > maxSegmentPayload {
			return nil, fmt.Errorf("iptc: marker 0x%02X payload of %d bytes exceeds segment limit", seg.marker, len(seg.payload))
		}
		out = binary.BigEndian.AppendUint16(out, uint16(len(seg.payload)+2))
		out = append(out, seg.payload...)
	}
	if len(rest) == 0 {
		rest = []byte{0xFF, markerEOI}
	}
	return append(out, rest...), nil
}

// insertionIndex returns where a new APP13 segment belongs: after the leading
// run of APPn and comment segments.
func insertionIndex(segments []segment) int {
	for i, seg := range segments {
		if (seg.marker < markerAPP0 || seg.marker > markerAPP15) && seg.marker != markerCOM {
			return i
		}
	}
	return len(segments)
}
