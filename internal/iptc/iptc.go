package iptc

import (
	"errors"
	"fmt"
	"os"
	"time"

	"photoalbum/internal/fileutil"
)

const dateLayout = "20060102"

// ErrBlockTooLarge is returned when the rewritten resource block no longer
// fits in a single APP13 segment.
var ErrBlockTooLarge = errors.New("iptc: metadata block exceeds APP13 segment size")

// Fields are the records a photo cares about. DateCreated is zero when the
// block carries no well-formed 2:55 record.
type Fields struct {
	Description string
	DateCreated time.Time
	Keywords    []string
}

// Update describes a metadata write. Caption and keyword records are always
// replaced; the date record is replaced only when DateCreated is non-zero.
type Update struct {
	Description string
	Keywords    []string
	DateCreated time.Time
}

// Read parses the metadata of the JPEG file at path.
func Read(path string) (Fields, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fields{}, fmt.Errorf("iptc: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse extracts Fields from JPEG bytes. A file without a Photoshop or IPTC
// block yields empty Fields and no error.
func Parse(data []byte) (Fields, error) {
	segments, _, err := splitJPEG(data)
	if err != nil {
		return Fields{}, err
	}
	payload, ok := photoshopPayload(segments)
	if !ok {
		return Fields{}, nil
	}
	block, err := parseResources(payload)
	if err != nil {
		return Fields{}, err
	}
	stream, ok := block.iptcData()
	if !ok {
		return Fields{}, nil
	}
	sets, err := parseDatasets(stream)
	if err != nil {
		return Fields{}, err
	}
	return fieldsFrom(sets), nil
}

func fieldsFrom(sets []dataset) Fields {
	cs := detectCharset(sets)
	var f Fields
	captionSeen, dateSeen := false, false
	for _, d := range sets {
		switch {
		case d.is(recordApplication, datasetCaption) && !captionSeen:
			f.Description = decodeText(d.value, cs)
			captionSeen = true
		case d.is(recordApplication, datasetDateCreated) && !dateSeen:
			dateSeen = true
			if t, err := parseDate(string(d.value)); err == nil {
				f.DateCreated = t
			}
		case d.is(recordApplication, datasetKeywords):
			f.Keywords = append(f.Keywords, decodeText(d.value, cs))
		}
	}
	return f
}

func parseDate(value string) (time.Time, error) {
	if len(value) != len(dateLayout) {
		return time.Time{}, fmt.Errorf("iptc: date %q is not YYYYMMDD", value)
	}
	return time.ParseInLocation(dateLayout, value, time.Local)
}

// Write applies u to the JPEG file at path, replacing it atomically.
func Write(path string, u Update) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("iptc: read %s: %w", path, err)
	}
	out, err := Apply(data, u)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, out)
}

// Apply returns data with its IPTC block rewritten per u. An unreadable
// resource block or record stream is replaced by a fresh one; all other
// segments, resources, and datasets are kept in place.
func Apply(data []byte, u Update) ([]byte, error) {
	segments, rest, err := splitJPEG(data)
	if err != nil {
		return nil, err
	}

	var block resourceBlock
	if payload, ok := photoshopPayload(segments); ok {
		if parsed, err := parseResources(payload); err == nil {
			block = parsed
		}
	}

	var sets []dataset
	if stream, ok := block.iptcData(); ok {
		if parsed, err := parseDatasets(stream); err == nil {
			sets = parsed
		}
	}
	sets = applyUpdate(sets, u)

	block = block.withIPTC(encodeDatasets(sets))
	payload := block.encode()
	if len(payload) > maxSegmentPayload {
		return nil, ErrBlockTooLarge
	}
	return joinJPEG(replacePhotoshop(segments, payload), rest)
}

func applyUpdate(sets []dataset, u Update) []dataset {
	if !hasRecord(sets, recordApplication) {
		sets = insertOrdered(sets, dataset{record: recordApplication, tag: datasetRecordVersion, value: []byte{0x00, 0x04}})
	}

	cs := detectCharset(sets)
	if cs == charsetUndeclared && !updateIsASCII(u) {
		sets = insertOrdered(sets, dataset{record: recordEnvelope, tag: datasetCodedCharset, value: utf8Designation})
		cs = charsetUTF8
	}

	sets = without(sets, recordApplication, datasetCaption)
	sets = insertOrdered(sets, dataset{record: recordApplication, tag: datasetCaption, value: encodeText(u.Description, cs)})

	sets = without(sets, recordApplication, datasetKeywords)
	keywords := make([]dataset, 0, len(u.Keywords))
	for _, kw := range u.Keywords {
		keywords = append(keywords, dataset{record: recordApplication, tag: datasetKeywords, value: encodeText(kw, cs)})
	}
	sets = insertOrdered(sets, keywords...)

	if !u.DateCreated.IsZero() {
		sets = without(sets, recordApplication, datasetDateCreated)
		sets = insertOrdered(sets, dataset{record: recordApplication, tag: datasetDateCreated, value: []byte(u.DateCreated.Format(dateLayout))})
	}
	return sets
}

func hasRecord(sets []dataset, record byte) bool {
	for _, d := range sets {
		if d.record == record {
			return true
		}
	}
	return false
}

func updateIsASCII(u Update) bool {
	if !isASCII(u.Description) {
		return false
	}
	for _, kw := range u.Keywords {
		if !isASCII(kw) {
			return false
		}
	}
	return true
}

// replacePhotoshop swaps every Photoshop APP13 segment for one carrying
// payload, at the position of the first one or after the leading APPn run.
func replacePhotoshop(segments []segment, payload []byte) []segment {
	out := make([]segment, 0, len(segments)+1)
	at := -1
	for _, seg := range segments {
		if isPhotoshopSegment(seg) {
			if at < 0 {
				at = len(out)
			}
			continue
		}
		out = append(out, seg)
	}
	if at < 0 {
		at = insertionIndex(out)
	}
	fresh := segment{marker: markerAPP13, payload: payload}
	out = append(out, segment{})
	copy(out[at+1:], out[at:])
	out[at] = fresh
	return out
}

// Transplant copies the Photoshop resource block of src into dst, replacing
// any block dst already has. dst is returned unchanged when src has none.
func Transplant(src, dst []byte) ([]byte, error) {
	srcSegments, _, err := splitJPEG(src)
	if err != nil {
		return nil, err
	}
	payload, ok := photoshopPayload(srcSegments)
	if !ok {
		return dst, nil
	}
	dstSegments, rest, err := splitJPEG(dst)
	if err != nil {
		return nil, err
	}
	full := append(append([]byte(nil), photoshopSignature...), payload...)
	if len(full) > maxSegmentPayload {
		return nil, ErrBlockTooLarge
	}
	return joinJPEG(replacePhotoshop(dstSegments, full), rest)
}
