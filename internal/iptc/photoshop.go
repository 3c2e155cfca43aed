package iptc

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const iptcResourceID = 0x0404

var (
	photoshopSignature = []byte("Photoshop 3.0\x00")
	resourceType       = []byte("8BIM")
)

// resource is one Photoshop image resource. name holds the raw, padded Pascal
// string so it is written back unchanged.
type resource struct {
	id   uint16
	name []byte
	data []byte
}

// resourceBlock is a parsed Photoshop APP13 payload. trailer keeps any bytes
// that could not be read as 8BIM resources.
type resourceBlock struct {
	resources []resource
	trailer   []byte
}

func isPhotoshopSegment(seg segment) bool {
	return seg.marker == markerAPP13 && bytes.HasPrefix(seg.payload, photoshopSignature)
}

func parseResources(data []byte) (resourceBlock, error) {
	var block resourceBlock
	pos := 0
	for pos < len(data) {
		if len(data)-pos < 4 || !bytes.Equal(data[pos:pos+4], resourceType) {
			block.trailer = append([]byte(nil), data[pos:]...)
			return block, nil
		}
		p := pos + 4
		if p+3 > len(data) {
			return block, fmt.Errorf("iptc: truncated resource header at offset %d", pos)
		}
		id := binary.BigEndian.Uint16(data[p:])
		p += 2
		nameLen := 1 + int(data[p])
		if nameLen%2 == 1 {
			nameLen++
		}
		if p+nameLen+4 > len(data) {
			return block, fmt.Errorf("iptc: truncated resource name at offset %d", pos)
		}
		name := data[p : p+nameLen]
		p += nameLen
		size := int(binary.BigEndian.Uint32(data[p:]))
		p += 4
		if size < 0 || p+size > len(data) {
			return block, fmt.Errorf("iptc: resource 0x%04X size %d overruns block", id, size)
		}
		block.resources = append(block.resources, resource{id: id, name: name, data: data[p : p+size]})
		p += size
		if size%2 == 1 && p < len(data) {
			p++
		}
		pos = p
	}
	return block, nil
}

func (b resourceBlock) encode() []byte {
	var buf bytes.Buffer
	buf.Write(photoshopSignature)
	for _, res := range b.resources {
		buf.Write(resourceType)
		_ = binary.Write(&buf, binary.BigEndian, res.id)
		name := res.name
		if len(name) == 0 {
			name = []byte{0, 0}
		}
		buf.Write(name)
		_ = binary.Write(&buf, binary.BigEndian, uint32(len(res.data)))
		buf.Write(res.data)
		if len(res.data)%2 == 1 {
			buf.WriteByte(0)
		}
	}
	buf.Write(b.trailer)
	return buf.Bytes()
}

// iptcData returns the IIM stream of the first IPTC resource.
func (b resourceBlock) iptcData() ([]byte, bool) {
	for _, res := range b.resources {
		if res.id == iptcResourceID {
			return res.data, true
		}
	}
	return nil, false
}

// withIPTC replaces the first IPTC resource (dropping duplicates) or appends
// a new one.
func (b resourceBlock) withIPTC(data []byte) resourceBlock {
	out := resourceBlock{trailer: b.trailer}
	replaced := false
	for _, res := range b.resources {
		if res.id != iptcResourceID {
			out.resources = append(out.resources, res)
			continue
		}
		if replaced {
			continue
		}
		res.data = data
		out.resources = append(out.resources, res)
		replaced = true
	}
	if !replaced {
		out.resources = append(out.resources, resource{id: iptcResourceID, data: data})
	}
	return out
}

// photoshopPayload concatenates the resource streams of every Photoshop APP13
// segment, which writers split when the block outgrows one segment.
func photoshopPayload(segments []segment) ([]byte, bool) {
	var payload []byte
	found := false
	for _, seg := range segments {
		if !isPhotoshopSegment(seg) {
			continue
		}
		found = true
		payload = append(payload, seg.payload[len(photoshopSignature):]...)
	}
	return payload, found
}
