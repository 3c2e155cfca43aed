package iptc

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

type charsetKind int

const (
	charsetUndeclared charsetKind = iota
	charsetUTF8
	charsetOther
)

func detectCharset(sets []dataset) charsetKind {
	for _, d := range sets {
		if d.is(recordEnvelope, datasetCodedCharset) {
			if bytes.Equal(d.value, utf8Designation) {
				return charsetUTF8
			}
			return charsetOther
		}
	}
	return charsetUndeclared
}

func decodeText(value []byte, cs charsetKind) string {
	if cs == charsetUTF8 || (cs == charsetUndeclared && utf8.Valid(value)) {
		return string(value)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(value)
	if err != nil {
		return string(value)
	}
	return string(decoded)
}

// encodeText returns value in the block's character set. Runes that Latin-1
// cannot hold become '?'.
func encodeText(value string, cs charsetKind) []byte {
	if cs != charsetOther {
		return []byte(value)
	}
	out := make([]byte, 0, len(value))
	for _, r := range value {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
