// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package scrub

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"
)

const (
	tagExifIFD = 0x8769
	tagGPSIFD  = 0x8825

	ifdEntrySize = 12
)

// exifTagNames maps well-known IFD0 and Exif IFD tag ids to their names.
var exifTagNames = map[uint16]string{
	0x010E: "ImageDescription",
	0x010F: "Make",
	0x0110: "Model",
	0x0112: "Orientation",
	0x011A: "XResolution",
	0x011B: "YResolution",
	0x0128: "ResolutionUnit",
	0x0131: "Software",
	0x0132: "DateTime",
	0x013B: "Artist",
	0x8298: "Copyright",
	0x829A: "ExposureTime",
	0x829D: "FNumber",
	0x8822: "ExposureProgram",
	0x8827: "ISOSpeedRatings",
	0x9003: "DateTimeOriginal",
	0x9004: "DateTimeDigitized",
	0x9201: "ShutterSpeedValue",
	0x9202: "ApertureValue",
	0x9209: "Flash",
	0x920A: "FocalLength",
	0x927C: "MakerNote",
	0x9286: "UserComment",
	0xA001: "ColorSpace",
	0xA002: "PixelXDimension",
	0xA003: "PixelYDimension",
	0xA430: "CameraOwnerName",
	0xA431: "BodySerialNumber",
	0xA432: "LensSpecification",
	0xA433: "LensMake",
	0xA434: "LensModel",
	0xA435: "LensSerialNumber",
}

// editableExifTags are the IFD0 ASCII tags an edit can set, by audit
// name.
var editableExifTags = map[string]uint16{
	"ImageDescription": 0x010E,
	"Make":             0x010F,
	"Model":            0x0110,
	"Software":         0x0131,
	"DateTime":         0x0132,
	"Artist":           0x013B,
	"Copyright":        0x8298,
}

// gpsTagNames maps GPS IFD tag ids to their names.
var gpsTagNames = map[uint16]string{
	0x0000: "GPSVersionID",
	0x0001: "GPSLatitudeRef",
	0x0002: "GPSLatitude",
	0x0003: "GPSLongitudeRef",
	0x0004: "GPSLongitude",
	0x0005: "GPSAltitudeRef",
	0x0006: "GPSAltitude",
	0x0007: "GPSTimeStamp",
	0x0012: "GPSMapDatum",
	0x001D: "GPSDateStamp",
}

// exifTags walks the IFD chain of a TIFF blob and returns every tag name
// it finds, following the Exif and GPS sub-IFD pointers from IFD0. The
// walk tolerates truncated structures and returns what it collected; only
// an unreadable header is an error.
func exifTags(
	data []byte,
) ([]string, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("truncated tiff header")
	}

	var order binary.ByteOrder

	switch {
	case data[0] == 'I' && data[1] == 'I':
		order = binary.LittleEndian
	case data[0] == 'M' && data[1] == 'M':
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("bad tiff byte order marker")
	}

	if order.Uint16(data[2:4]) != 42 {
		return nil, fmt.Errorf("bad tiff magic")
	}

	var tags []string

	visited := map[uint32]bool{}

	var walk func(offset uint32, names map[uint16]string)
	walk = func(offset uint32, names map[uint16]string) {
		if visited[offset] {
			return
		}
		visited[offset] = true

		off := int(offset)
		if off < 0 || off+2 > len(data) {
			return
		}

		count := int(order.Uint16(data[off : off+2]))
		base := off + 2

		for i := 0; i < count; i++ {
			entry := base + i*ifdEntrySize
			if entry+ifdEntrySize > len(data) {
				return
			}

			tag := order.Uint16(data[entry : entry+2])
			value := order.Uint32(data[entry+8 : entry+12])

			switch tag {
			case tagExifIFD:
				walk(value, exifTagNames)
			case tagGPSIFD:
				walk(value, gpsTagNames)
			default:
				tags = append(tags, exifTagName(tag, names))
			}
		}
	}

	walk(order.Uint32(data[4:8]), exifTagNames)

	return tags, nil
}

// exifASCIIValues reads the current values of the editable ASCII tags
// from IFD0 of a TIFF blob. Unreadable structures yield an empty map;
// an edit then starts from a blank slate.
func exifASCIIValues(
	data []byte,
) map[uint16]string {
	values := map[uint16]string{}

	if len(data) < 8 {
		return values
	}

	var order binary.ByteOrder

	switch {
	case data[0] == 'I' && data[1] == 'I':
		order = binary.LittleEndian
	case data[0] == 'M' && data[1] == 'M':
		order = binary.BigEndian
	default:
		return values
	}

	off := int(order.Uint32(data[4:8]))
	if off < 0 || off+2 > len(data) {
		return values
	}

	editable := map[uint16]bool{}
	for _, id := range editableExifTags {
		editable[id] = true
	}

	count := int(order.Uint16(data[off : off+2]))
	base := off + 2

	for i := 0; i < count; i++ {
		entry := base + i*ifdEntrySize
		if entry+ifdEntrySize > len(data) {
			break
		}

		tag := order.Uint16(data[entry : entry+2])
		typ := order.Uint16(data[entry+2 : entry+4])

		// Type 2 is ASCII.
		if !editable[tag] || typ != 2 {
			continue
		}

		n := int(order.Uint32(data[entry+4 : entry+8]))

		var raw []byte

		if n <= 4 {
			raw = data[entry+8 : entry+8+n]
		} else {
			vo := int(order.Uint32(data[entry+8 : entry+12]))
			if vo < 0 || vo+n > len(data) {
				continue
			}

			raw = data[vo : vo+n]
		}

		values[tag] = string(bytes.TrimRight(raw, "\x00"))
	}

	return values
}

// buildExifBlob serializes the given ASCII tag values as a little-endian
// TIFF with a single IFD, ready to sit behind the Exif identifier of an
// APP1 segment.
func buildExifBlob(
	values map[uint16]string,
) []byte {
	tags := make([]uint16, 0, len(values))
	for tag := range values {
		tags = append(tags, tag)
	}

	// IFD entries must be sorted by tag id.
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

	order := binary.LittleEndian

	var out bytes.Buffer

	out.WriteString("II")

	_ = binary.Write(&out, order, uint16(42))
	_ = binary.Write(&out, order, uint32(8))
	_ = binary.Write(&out, order, uint16(len(tags)))

	// Long values land in a data area after the IFD terminator.
	dataStart := 8 + 2 + len(tags)*ifdEntrySize + 4

	var extra bytes.Buffer

	for _, tag := range tags {
		value := append([]byte(values[tag]), 0)

		_ = binary.Write(&out, order, tag)
		_ = binary.Write(&out, order, uint16(2))
		_ = binary.Write(&out, order, uint32(len(value)))

		if len(value) <= 4 {
			padded := make([]byte, 4)
			copy(padded, value)
			out.Write(padded)

			continue
		}

		_ = binary.Write(&out, order, uint32(dataStart+extra.Len()))
		extra.Write(value)
	}

	_ = binary.Write(&out, order, uint32(0))
	out.Write(extra.Bytes())

	return out.Bytes()
}

// exifTagName resolves a tag id against a name table, with a hex
// placeholder for unknown ids.
func exifTagName(
	tag uint16,
	names map[uint16]string,
) string {
	if name, ok := names[tag]; ok {
		return name
	}

	return fmt.Sprintf("Tag0x%04X", tag)
}
