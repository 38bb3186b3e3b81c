package ports

import "context"

// ExportService renders the full (sorted) employee set to downloadable byte
// streams. Both exports load the whole set at call time; acceptable at the
// target scale of hundreds to low thousands of records.
type ExportService interface {
	ExportCSV(ctx context.Context) ([]byte, error)
	ExportExcel(ctx context.Context) ([]byte, error)
}
