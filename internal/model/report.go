package model

// QAMeta carries parsing counters from the Excel parser. It is passed
// through untouched into the final QA report.
type QAMeta struct {
	TotalRowsSeen            int `json:"total_rows_seen"`
	RowsParsed               int `json:"rows_parsed"`
	RowsSkippedMissingFields int `json:"rows_skipped_missing_fields"`
}

// SummaryRow is one aggregated output row for a single house (lot + plan).
// Amounts is keyed by the final category headers, including numbered
// duplicate headers such as "TOUCH UP (2)".
type SummaryRow struct {
	Amounts  map[string]float64 `json:"amounts"`
	LotBlock string             `json:"lot_block"`
	Plan     string             `json:"plan"`
	Total    float64            `json:"total"`
}

// SuspiciousTotal flags a house whose total looks wrong. It is recorded
// for review, never rejected.
type SuspiciousTotal struct {
	LotBlock string  `json:"lot_block"`
	Plan     string  `json:"plan"`
	Reason   string  `json:"reason"`
	Total    float64 `json:"total"`
}

// UnmappedExample is one entry in the QA report's unmapped/auto-created
// task list, ordered by frequency.
type UnmappedExample struct {
	TaskText string   `json:"task_text"`
	Examples []string `json:"examples,omitempty"`
	Count    int      `json:"count"`
}

// QAReport summarizes a full aggregation run for operator review.
type QAReport struct {
	CountsPerBucket  map[string]int    `json:"counts_per_bucket"`
	UnmappedExamples []UnmappedExample `json:"unmapped_examples"`
	SuspiciousTotals []SuspiciousTotal `json:"suspicious_totals"`
	ParseMeta        QAMeta            `json:"parse_meta"`
}
