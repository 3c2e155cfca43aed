// Package iptc reads and writes the IPTC-IIM record block embedded in JPEG
// files.
//
// The block lives in an APP13 segment as the 0x0404 resource of a Photoshop
// image resource stream. Parse extracts the caption (2:120), creation date
// (2:55, YYYYMMDD), and keywords (2:25). Apply replaces the caption and keyword
// records, optionally the date, and passes every other dataset, resource, and
// segment through byte for byte. Text is read as UTF-8 when declared by the
// 1:90 coded character set record or when it is valid UTF-8, and as Latin-1
// otherwise.
package iptc
