// Package normalize maps raw legacy column values into the field vocabulary
// the NetSuite RESTlet expects. Every function is total: null, blank and
// absent inputs always produce a usable default, never an error.
package normalize

import (
	"database/sql"
	"strings"
)

// Fallbacks for text fields whose blank value has a defined substitute in
// the destination vocabulary.
const (
	DefaultSubsidiary = "FYLS"
	DefaultLocation   = "None"
)

// Wire date layout: day/month/4-digit-year.
const dateLayout = "02/01/2006"

// Text returns the trimmed string value, or fallback when the field is
// null or blank.
func Text(s sql.NullString, fallback string) string {
	if !s.Valid {
		return fallback
	}
	v := strings.TrimSpace(s.String)
	if v == "" {
		return fallback
	}
	return v
}

// Amount returns the numeric value, or 0 when the field is null.
func Amount(f sql.NullFloat64) float64 {
	if !f.Valid {
		return 0
	}
	return f.Float64
}

// YesNo maps a nullable flag to the literal labels the destination uses.
// Null is treated as false.
func YesNo(b sql.NullBool) string {
	if b.Valid && b.Bool {
		return "Yes"
	}
	return "No"
}

// Date formats a nullable timestamp as dd/MM/yyyy, dropping any time-of-day
// component, or returns the empty string when the field is null.
func Date(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(dateLayout)
}
