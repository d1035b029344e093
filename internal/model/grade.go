// Package model defines the core domain models used throughout the application.
package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// GradeKind discriminates the three states a grade can be in.
type GradeKind int

// Grade kinds.
const (
	GradeAbsent GradeKind = iota
	GradeNumber
	GradeText
)

// Grade is the condition score assigned by a grading company. Source
// documents carry it as a number, a free-text string, or not at all, so it
// is modeled as a tagged value rather than an interface{} field.
type Grade struct {
	text string
	num  float64
	kind GradeKind
}

// NumberGrade returns a numeric grade.
func NumberGrade(v float64) Grade {
	return Grade{kind: GradeNumber, num: v}
}

// TextGrade returns a free-text grade.
func TextGrade(s string) Grade {
	return Grade{kind: GradeText, text: s}
}

// ParseGrade converts operator input into a grade: blank becomes absent, a
// parseable number becomes numeric, anything else is kept as text. This is
// the only place raw input is converted; grades never change kind after.
func ParseGrade(s string) Grade {
	s = strings.TrimSpace(s)
	if s == "" {
		return Grade{}
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return NumberGrade(v)
	}
	return TextGrade(s)
}

// Kind returns the grade's discriminator.
func (g Grade) Kind() GradeKind {
	return g.kind
}

// IsAbsent reports whether no grade is set.
func (g Grade) IsAbsent() bool {
	return g.kind == GradeAbsent
}

// Float returns the numeric value when the grade is numeric.
func (g Grade) Float() (float64, bool) {
	return g.num, g.kind == GradeNumber
}

// Truthy reports whether the grade counts as present for export
// eligibility. A numeric grade of exactly 0 counts as missing; that
// mirrors the historical behavior and is intentional, even though grading
// scales with a real 0 would be mishandled by it.
func (g Grade) Truthy() bool {
	switch g.kind {
	case GradeNumber:
		return g.num != 0
	case GradeText:
		return g.text != ""
	default:
		return false
	}
}

// String formats the grade for filenames and display. Numbers drop
// trailing zeros (10, 9.5), text is verbatim, absent is empty.
func (g Grade) String() string {
	switch g.kind {
	case GradeNumber:
		return strconv.FormatFloat(g.num, 'f', -1, 64)
	case GradeText:
		return g.text
	default:
		return ""
	}
}

// MarshalJSON writes a number, a string, or null depending on the kind.
func (g Grade) MarshalJSON() ([]byte, error) {
	switch g.kind {
	case GradeNumber:
		return json.Marshal(g.num)
	case GradeText:
		return json.Marshal(g.text)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a number, a string, or null. A numeric string
// stays text; documents are consumed verbatim.
func (g *Grade) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*g = Grade{}
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = TextGrade(s)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*g = NumberGrade(v)
	return nil
}
