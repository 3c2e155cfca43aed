package iptc

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func plainJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 40), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

// withBlock inserts a Photoshop APP13 carrying the given resources.
func withBlock(t *testing.T, data []byte, resources ...resource) []byte {
	t.Helper()
	segments, rest, err := splitJPEG(data)
	if err != nil {
		t.Fatalf("split fixture: %v", err)
	}
	payload := resourceBlock{resources: resources}.encode()
	out, err := joinJPEG(replacePhotoshop(segments, payload), rest)
	if err != nil {
		t.Fatalf("join fixture: %v", err)
	}
	return out
}

func iptcResource(sets ...dataset) resource {
	return resource{id: iptcResourceID, data: encodeDatasets(sets)}
}

func datasetsOf(t *testing.T, data []byte) []dataset {
	t.Helper()
	segments, _, err := splitJPEG(data)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	payload, ok := photoshopPayload(segments)
	if !ok {
		t.Fatal("expected Photoshop block")
	}
	block, err := parseResources(payload)
	if err != nil {
		t.Fatalf("parse resources: %v", err)
	}
	stream, ok := block.iptcData()
	if !ok {
		t.Fatal("expected IPTC resource")
	}
	sets, err := parseDatasets(stream)
	if err != nil {
		t.Fatalf("parse datasets: %v", err)
	}
	return sets
}

func count(sets []dataset, record, tag byte) int {
	n := 0
	for _, d := range sets {
		if d.is(record, tag) {
			n++
		}
	}
	return n
}

func TestParsePlainJPEGHasNoFields(t *testing.T) {
	f, err := Parse(plainJPEG(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Description != "" || !f.DateCreated.IsZero() || len(f.Keywords) != 0 {
		t.Fatalf("expected empty fields, got %+v", f)
	}
}

func TestParseRejectsNonJPEG(t *testing.T) {
	if _, err := Parse([]byte("GIF89a....")); !errors.Is(err, ErrNotJPEG) {
		t.Fatalf("expected ErrNotJPEG, got %v", err)
	}
	if _, err := Apply([]byte("nope"), Update{}); !errors.Is(err, ErrNotJPEG) {
		t.Fatalf("expected ErrNotJPEG from Apply, got %v", err)
	}
}

func TestApplyRoundTrip(t *testing.T) {
	date := time.Date(2019, time.July, 4, 0, 0, 0, 0, time.Local)
	out, err := Apply(plainJPEG(t), Update{
		Description: "Fireworks over the bay",
		Keywords:    []string{"summer", "night", "summer"},
		DateCreated: date,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(out)); err != nil {
		t.Fatalf("rewritten file no longer decodes: %v", err)
	}

	f, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Description != "Fireworks over the bay" {
		t.Fatalf("unexpected description %q", f.Description)
	}
	if !reflect.DeepEqual(f.Keywords, []string{"summer", "night", "summer"}) {
		t.Fatalf("unexpected keywords %v", f.Keywords)
	}
	if !f.DateCreated.Equal(date) {
		t.Fatalf("unexpected date %v", f.DateCreated)
	}
	if n := count(datasetsOf(t, out), recordApplication, datasetRecordVersion); n != 1 {
		t.Fatalf("expected a record version dataset in a fresh block, got %d", n)
	}
}

func TestApplyReplacesCaptionsAndKeywordsOnly(t *testing.T) {
	objectName := dataset{record: 2, tag: 5, value: []byte("Object")}
	copyright := dataset{record: 2, tag: 116, value: []byte("(c) Someone")}
	source := withBlock(t, plainJPEG(t),
		resource{id: 0x03ED, name: []byte{0x03, 'r', 'e', 's'}, data: []byte{1, 2, 3}},
		iptcResource(
			dataset{record: 2, tag: 0, value: []byte{0, 4}},
			objectName,
			dataset{record: 2, tag: 25, value: []byte("old1")},
			dataset{record: 2, tag: 55, value: []byte("20010203")},
			copyright,
			dataset{record: 2, tag: 120, value: []byte("first caption")},
			dataset{record: 2, tag: 120, value: []byte("second caption")},
			dataset{record: 2, tag: 25, value: []byte("old2")},
		),
	)

	out, err := Apply(source, Update{Description: "new caption", Keywords: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	sets := datasetsOf(t, out)
	if n := count(sets, 2, datasetCaption); n != 1 {
		t.Fatalf("expected exactly one caption, got %d", n)
	}
	if n := count(sets, 2, datasetKeywords); n != 2 {
		t.Fatalf("expected two keywords, got %d", n)
	}
	if n := count(sets, 2, 5); n != 1 || count(sets, 2, 116) != 1 {
		t.Fatal("expected unrelated datasets to survive")
	}

	f, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Description != "new caption" || !reflect.DeepEqual(f.Keywords, []string{"a", "b"}) {
		t.Fatalf("unexpected fields %+v", f)
	}
	if want := time.Date(2001, time.February, 3, 0, 0, 0, 0, time.Local); !f.DateCreated.Equal(want) {
		t.Fatalf("zero update date should keep existing date, got %v", f.DateCreated)
	}

	segments, _, _ := splitJPEG(out)
	payload, _ := photoshopPayload(segments)
	block, err := parseResources(payload)
	if err != nil {
		t.Fatalf("parse resources: %v", err)
	}
	if len(block.resources) != 2 || block.resources[0].id != 0x03ED || !bytes.Equal(block.resources[0].data, []byte{1, 2, 3}) {
		t.Fatalf("expected other resources to pass through, got %+v", block.resources)
	}
}

func TestApplyKeepsDatasetOrdering(t *testing.T) {
	source := withBlock(t, plainJPEG(t), iptcResource(
		dataset{record: 2, tag: 0, value: []byte{0, 4}},
		dataset{record: 2, tag: 116, value: []byte("c")},
		dataset{record: 7, tag: 10, value: []byte{1}},
	))
	out, err := Apply(source, Update{Description: "d", Keywords: []string{"k"}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	var got [][2]byte
	for _, d := range datasetsOf(t, out) {
		got = append(got, [2]byte{d.record, d.tag})
	}
	want := [][2]byte{{2, 0}, {2, 25}, {2, 116}, {2, 120}, {7, 10}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected dataset order %v, want %v", got, want)
	}
}

func TestParseDecodesLatin1WhenUndeclared(t *testing.T) {
	source := withBlock(t, plainJPEG(t), iptcResource(
		dataset{record: 2, tag: 120, value: []byte{'c', 'a', 'f', 0xE9}},
	))
	f, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Description != "café" {
		t.Fatalf("expected Latin-1 decode, got %q", f.Description)
	}
}

func TestApplyDeclaresUTF8ForNonASCII(t *testing.T) {
	out, err := Apply(plainJPEG(t), Update{Description: "Zürich", Keywords: []string{"été"}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	sets := datasetsOf(t, out)
	if sets[0].record != recordEnvelope || sets[0].tag != datasetCodedCharset || !bytes.Equal(sets[0].value, utf8Designation) {
		t.Fatalf("expected leading UTF-8 designation, got %+v", sets[0])
	}
	f, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Description != "Zürich" || f.Keywords[0] != "été" {
		t.Fatalf("unexpected fields %+v", f)
	}
}

func TestApplyEncodesLatin1WhenDeclared(t *testing.T) {
	latin1 := []byte{0x1B, 0x2E, 0x41}
	source := withBlock(t, plainJPEG(t), iptcResource(
		dataset{record: 1, tag: 90, value: latin1},
		dataset{record: 2, tag: 0, value: []byte{0, 4}},
	))
	out, err := Apply(source, Update{Description: "café ✓"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	var caption []byte
	for _, d := range datasetsOf(t, out) {
		if d.is(2, datasetCaption) {
			caption = d.value
		}
	}
	if !bytes.Equal(caption, []byte{'c', 'a', 'f', 0xE9, ' ', '?'}) {
		t.Fatalf("unexpected Latin-1 caption bytes %v", caption)
	}
	f, _ := Parse(out)
	if f.Description != "café ?" {
		t.Fatalf("unexpected decoded caption %q", f.Description)
	}
}

func TestParseMalformedDateIsZero(t *testing.T) {
	source := withBlock(t, plainJPEG(t), iptcResource(
		dataset{record: 2, tag: 55, value: []byte("2019-7-4")},
	))
	f, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !f.DateCreated.IsZero() {
		t.Fatalf("expected zero date, got %v", f.DateCreated)
	}
}

func TestCorruptRecordStream(t *testing.T) {
	source := withBlock(t, plainJPEG(t), resource{id: iptcResourceID, data: []byte{0x1C, 2, 120, 0x00, 0x40, 'x'}})
	if _, err := Parse(source); err == nil {
		t.Fatal("expected Parse error for overrunning dataset")
	}
	out, err := Apply(source, Update{Description: "fresh"})
	if err != nil {
		t.Fatalf("Apply should start from an empty block: %v", err)
	}
	f, err := Parse(out)
	if err != nil || f.Description != "fresh" {
		t.Fatalf("unexpected result %+v, %v", f, err)
	}
}

func TestDatasetExtendedLength(t *testing.T) {
	long := bytes.Repeat([]byte{'x'}, 0x8000+10)
	stream := encodeDatasets([]dataset{{record: 2, tag: 120, value: long}, {record: 2, tag: 25, value: []byte("k")}})
	if stream[3] != 0x80 || stream[4] != 0x04 {
		t.Fatalf("expected extended length header, got % X", stream[:5])
	}
	sets, err := parseDatasets(stream)
	if err != nil {
		t.Fatalf("parseDatasets: %v", err)
	}
	if len(sets) != 2 || len(sets[0].value) != len(long) || string(sets[1].value) != "k" {
		t.Fatalf("unexpected datasets %d", len(sets))
	}
}

func TestParseDatasetsAcceptsZeroPadding(t *testing.T) {
	stream := append(encodeDatasets([]dataset{{record: 2, tag: 25, value: []byte("k")}}), 0, 0, 0)
	sets, err := parseDatasets(stream)
	if err != nil || len(sets) != 1 {
		t.Fatalf("unexpected result %v, %v", sets, err)
	}
}

func TestApplyRejectsOversizedBlock(t *testing.T) {
	huge := bytes.Repeat([]byte{'y'}, maxSegmentPayload)
	if _, err := Apply(plainJPEG(t), Update{Description: string(huge)}); !errors.Is(err, ErrBlockTooLarge) {
		t.Fatalf("expected ErrBlockTooLarge, got %v", err)
	}
}

func TestTransplant(t *testing.T) {
	tagged, err := Apply(plainJPEG(t), Update{Description: "keep me", Keywords: []string{"x"}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	reencoded := plainJPEG(t)

	out, err := Transplant(tagged, reencoded)
	if err != nil {
		t.Fatalf("Transplant: %v", err)
	}
	f, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Description != "keep me" || len(f.Keywords) != 1 {
		t.Fatalf("unexpected fields %+v", f)
	}

	untouched, err := Transplant(plainJPEG(t), reencoded)
	if err != nil || !bytes.Equal(untouched, reencoded) {
		t.Fatalf("expected dst unchanged when src has no block, err=%v", err)
	}
}

func TestWriteAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	if err := os.WriteFile(path, plainJPEG(t), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := Write(path, Update{Description: "on disk", Keywords: []string{"disk"}}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	f, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if f.Description != "on disk" || !reflect.DeepEqual(f.Keywords, []string{"disk"}) {
		t.Fatalf("unexpected fields %+v", f)
	}
	if _, err := Read(filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
