// Package meta extracts product metadata embedded in ICEYE GRD file names.
package meta

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ErrFormat indicates a path that does not contain the expected
// ICEYE GRD naming pattern.
var ErrFormat = errors.New("invalid file name format")

// namePattern matches the ICEYE GRD convention anywhere in a path:
// ICEYE_X<sat>_GRD_<mode>_<productID>_<YYYYMMDDThhmmss>
var namePattern = regexp.MustCompile(`ICEYE_X\d+_GRD_(SM|SL)_(\d+)_(\d{8}T\d{6})`)

// timestampLayout is the compact acquisition timestamp in the file name.
const timestampLayout = "20060102T150405"

// Info holds the metadata recovered from a GRD file name.
type Info struct {
	// ProductID is the numeric product token, verbatim
	ProductID string

	// Timestamp is the acquisition instant
	Timestamp time.Time
}

// ISOTimestamp renders the acquisition instant in ISO-8601 form,
// e.g. "2019-09-03T14:49:46".
func (i Info) ISOTimestamp() string {
	return i.Timestamp.Format("2006-01-02T15:04:05")
}

// Parse locates the ICEYE GRD naming pattern in path and returns the
// product ID and acquisition timestamp. The match is unanchored: any
// component of the path may carry the pattern. Paths without a match
// fail with ErrFormat.
func Parse(path string) (Info, error) {
	m := namePattern.FindStringSubmatch(path)
	if m == nil {
		return Info{}, fmt.Errorf("%w: %q", ErrFormat, path)
	}

	ts, err := time.Parse(timestampLayout, m[3])
	if err != nil {
		return Info{}, fmt.Errorf("%w: bad timestamp %q: %v", ErrFormat, m[3], err)
	}

	return Info{
		ProductID: m[2],
		Timestamp: ts,
	}, nil
}
