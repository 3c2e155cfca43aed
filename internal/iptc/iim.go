package iptc

import (
	"encoding/binary"
	"fmt"
)

const (
	tagMarker = 0x1C

	recordEnvelope    = 1
	recordApplication = 2

	datasetCodedCharset  = 90
	datasetRecordVersion = 0
	datasetKeywords      = 25
	datasetDateCreated   = 55
	datasetCaption       = 120
)

var utf8Designation = []byte{0x1B, 0x25, 0x47}

type dataset struct {
	record byte
	tag    byte
	value  []byte
}

func (d dataset) is(record, tag byte) bool {
	return d.record == record && d.tag == tag
}

// parseDatasets decodes an IIM stream. Zero padding after the last dataset
// is accepted and dropped.
func parseDatasets(data []byte) ([]dataset, error) {
	var out []dataset
	pos := 0
	for pos < len(data) {
		if data[pos] != tagMarker {
			if allZero(data[pos:]) {
				return out, nil
			}
			return nil, fmt.Errorf("iptc: expected tag marker at offset %d, found 0x%02X", pos, data[pos])
		}
		if pos+5 > len(data) {
			return nil, fmt.Errorf("iptc: truncated dataset header at offset %d", pos)
		}
		record, tag := data[pos+1], data[pos+2]
		length := int(binary.BigEndian.Uint16(data[pos+3:]))
		pos += 5
		if length&0x8000 != 0 {
			n := length & 0x7FFF
			if n < 1 || n > 4 || pos+n > len(data) {
				return nil, fmt.Errorf("iptc: invalid extended length for %d:%d", record, tag)
			}
			length = 0
			for _, b := range data[pos : pos+n] {
				length = length<<8 | int(b)
			}
			pos += n
		}
		if length < 0 || pos+length > len(data) {
			return nil, fmt.Errorf("iptc: dataset %d:%d length %d overruns block", record, tag, length)
		}
		out = append(out, dataset{record: record, tag: tag, value: data[pos : pos+length]})
		pos += length
	}
	return out, nil
}

func encodeDatasets(sets []dataset) []byte {
	var out []byte
	for _, d := range sets {
		out = append(out, tagMarker, d.record, d.tag)
		if len(d.value) <= 0x7FFF {
			out = binary.BigEndian.AppendUint16(out, uint16(len(d.value)))
		} else {
			out = append(out, 0x80, 0x04)
			out = binary.BigEndian.AppendUint32(out, uint32(len(d.value)))
		}
		out = append(out, d.value...)
	}
	return out
}

func without(sets []dataset, record, tag byte) []dataset {
	out := sets[:0:0]
	for _, d := range sets {
		if !d.is(record, tag) {
			out = append(out, d)
		}
	}
	return out
}

// insertOrdered places additions before the first dataset that sorts after
// them by record then dataset number, keeping the additions' own order.
func insertOrdered(sets []dataset, additions ...dataset) []dataset {
	if len(additions) == 0 {
		return sets
	}
	record, tag := additions[0].record, additions[0].tag
	at := len(sets)
	for i, d := range sets {
		if d.record > record || (d.record == record && d.tag > tag) {
			at = i
			break
		}
	}
	out := make([]dataset, 0, len(sets)+len(additions))
	out = append(out, sets[:at]...)
	out = append(out, additions...)
	return append(out, sets[at:]...)
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
