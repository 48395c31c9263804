package raster

import (
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// TIFF tags that carry textual metadata.
const (
	tagImageDescription = 270   // ASCII, KEY=VALUE lines
	tagGDALMetadata     = 42112 // ASCII, GDAL <Item> XML
)

const asciiFieldType = 2

// gdalMetadata mirrors the XML payload GDAL writes into tag 42112:
// <GDALMetadata><Item name="KEY">value</Item>...</GDALMetadata>
type gdalMetadata struct {
	Items []struct {
		Name  string `xml:"name,attr"`
		Value string `xml:",chardata"`
	} `xml:"Item"`
}

// readTags walks the first TIFF image file directory and collects the
// container's key-value metadata from the GDAL metadata tag and the
// image description.
func readTags(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	if len(raw) < 8 {
		return nil, fmt.Errorf("%w: truncated TIFF header in %s", ErrSourceRead, path)
	}

	var order binary.ByteOrder
	switch string(raw[0:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: not a TIFF container: %s", ErrSourceRead, path)
	}
	if order.Uint16(raw[2:4]) != 42 {
		return nil, fmt.Errorf("%w: bad TIFF magic in %s", ErrSourceRead, path)
	}

	ifdOffset := order.Uint32(raw[4:8])
	tags := make(map[string]string)

	if int(ifdOffset)+2 > len(raw) {
		return nil, fmt.Errorf("%w: directory offset out of bounds in %s", ErrSourceRead, path)
	}
	entries := int(order.Uint16(raw[ifdOffset : ifdOffset+2]))

	for i := 0; i < entries; i++ {
		entry := int(ifdOffset) + 2 + i*12
		if entry+12 > len(raw) {
			return nil, fmt.Errorf("%w: truncated directory in %s", ErrSourceRead, path)
		}

		tag := order.Uint16(raw[entry : entry+2])
		fieldType := order.Uint16(raw[entry+2 : entry+4])
		count := int(order.Uint32(raw[entry+4 : entry+8]))
		if fieldType != asciiFieldType {
			continue
		}
		if tag != tagImageDescription && tag != tagGDALMetadata {
			continue
		}

		// ASCII values of four bytes or fewer are stored inline.
		start := entry + 8
		if count > 4 {
			start = int(order.Uint32(raw[entry+8 : entry+12]))
		}
		if start+count > len(raw) {
			return nil, fmt.Errorf("%w: tag %d data out of bounds in %s", ErrSourceRead, tag, path)
		}
		value := strings.TrimRight(string(raw[start:start+count]), "\x00")

		switch tag {
		case tagGDALMetadata:
			parseGDALItems(value, tags)
		case tagImageDescription:
			parseDescription(value, tags)
		}
	}

	return tags, nil
}

// parseGDALItems merges the <Item> entries of a GDAL metadata payload
// into tags.
func parseGDALItems(payload string, tags map[string]string) {
	var md gdalMetadata
	if err := xml.Unmarshal([]byte(payload), &md); err != nil {
		return
	}
	for _, item := range md.Items {
		if item.Name != "" {
			tags[item.Name] = strings.TrimSpace(item.Value)
		}
	}
}

// parseDescription merges KEY=VALUE lines from an image description
// into tags. Lines without an equals sign are ignored.
func parseDescription(payload string, tags map[string]string) {
	for _, line := range strings.Split(payload, "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key != "" {
			tags[key] = strings.TrimSpace(value)
		}
	}
}
