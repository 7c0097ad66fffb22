package pipeline

import (
	"strconv"
	"strings"
)

// parseFloatOr parses a string as a float64, returning def if parsing fails
// or the value is a known source null marker.
func parseFloatOr(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// parseIntOr parses a string as an int, returning def if parsing fails.
// Integer-valued floats ("2.0") are accepted since the source mixes both.
func parseIntOr(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return def
}

// parseFloatPtr parses a string as a float64 pointer, nil when blank or
// unparseable. Used for nullable rating and rate columns.
func parseFloatPtr(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseBoolT returns true if the source flag is the literal "t"; every other
// value (including blank) is false, matching the source's truth encoding.
func parseBoolT(s string) bool {
	return strings.TrimSpace(s) == "t"
}

// parsePercent strips a trailing "%" and parses the remainder as a float,
// nil when blank or unparseable.
func parsePercent(s string) *float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parsePrice strips a leading currency symbol and thousands separators and
// parses the remainder as a float, nil when blank or unparseable.
func parsePrice(s string) *float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// canonicalCID normalizes a source-supplied natural key to a canonical
// integer string. The extracts are inconsistent about formatting the same id
// ("12345" vs "12345.0"), so every map key and every lookup goes through
// this one representation. Returns ok=false for non-numeric input, which is
// the row-drop signal throughout the pipeline.
func canonicalCID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(v, 10), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return strconv.FormatInt(int64(f), 10), true
	}
	return "", false
}
