package models

// ImportSummary reports the outcome of a CSV import.
type ImportSummary struct {
	Total   int      `json:"total"`
	Added   int      `json:"added"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// HasProblems is true when some rows were skipped or rejected.
func (s ImportSummary) HasProblems() bool {
	return s.Skipped > 0 || len(s.Errors) > 0
}

// ImportResult is the body of POST /products/import.
type ImportResult struct {
	Message string        `json:"message"`
	Summary ImportSummary `json:"summary"`
}
