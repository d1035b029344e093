// Package reclassify rebuilds front/back card pairs from exported
// filenames and renames grade-10 pairs to refined grade labels.
package reclassify

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Refined grade labels: the only vocabulary the classifier supports.
const (
	GradeMint = "10m"
	GradePoor = "10p"
)

// The bidirectional filename contract: GRADE_UNIQUEID_SIDE.EXT. Grade is
// digits with an optional decimal point, the unique ID is lowercase hex,
// side is front or back in any case.
var filenamePattern = regexp.MustCompile(`^([0-9.]+)_([a-f0-9]+)_((?i:front|back))\.(\w+)$`)

type parsedName struct {
	grade    string
	uniqueID string
	side     string
	ext      string
}

// parseFilename splits a filename into its contract tokens. The second
// return is false for any name outside the convention; such files are
// ignored by the scan, never reported.
func parseFilename(name string) (parsedName, bool) {
	m := filenamePattern.FindStringSubmatch(name)
	if m == nil {
		return parsedName{}, false
	}
	return parsedName{
		grade:    m[1],
		uniqueID: m[2],
		side:     strings.ToLower(m[3]),
		ext:      m[4],
	}, true
}

// buildFilename re-produces the contract for a renamed side.
func buildFilename(grade, uniqueID, side, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s", grade, uniqueID, side, ext)
}

// isGradeTen reports whether a filename grade token is exactly 10, so
// "10" and "10.0" both qualify and non-numeric tokens never do.
func isGradeTen(grade string) bool {
	v, err := strconv.ParseFloat(grade, 64)
	if err != nil {
		return false
	}
	return v == 10.0
}

// imageExtensions are the only files a scan considers.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

func isImageFile(name string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}
