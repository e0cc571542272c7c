// Package model defines the core domain models used throughout the application.
package model

import "time"

// ParsedRow represents a single data row parsed from a painter Excel export.
type ParsedRow struct {
	TaskStartDate *time.Time
	Subtotal      *float64
	Tax           *float64
	Total         *float64
	LotBlock      string
	Plan          string
	Elevation     string
	Swing         string
	TaskText      string
	TaskTextRaw   string // Raw task cell text, preferred for signal extraction
}

// Amount returns the dollar amount for the row, preferring total over
// subtotal. Rows with neither report 0.
func (r *ParsedRow) Amount() float64 {
	if r.Total != nil {
		return *r.Total
	}
	if r.Subtotal != nil {
		return *r.Subtotal
	}
	return 0
}

// ProjectMeta holds header metadata extracted from an input workbook.
type ProjectMeta struct {
	ProjectName string
	HouseString string
	Phase       string
}
