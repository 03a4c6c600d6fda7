package gst

import "regexp"

var (
	gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	hsnPattern   = regexp.MustCompile(`^\d{4,8}$`)
)

// ValidGSTIN reports whether s is a structurally valid 15-character GSTIN.
func ValidGSTIN(s string) bool {
	return gstinPattern.MatchString(s)
}

// ValidHSN reports whether s is a 4 to 8 digit HSN/SAC code.
func ValidHSN(s string) bool {
	return hsnPattern.MatchString(s)
}
