package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/ems-platform/employee-api/internal/core/domain"
	"github.com/ems-platform/employee-api/internal/core/ports"
)

// exportTimeLayout matches the original yyyy-MM-dd HH:mm:ss export format.
const exportTimeLayout = "2006-01-02 15:04:05"

const exportSheetName = "Employees"

var exportHeaders = []string{
	"ID", "First Name", "Last Name", "Email", "Phone",
	"Department", "Position", "Salary", "Created Date",
}

// ExportService renders the full employee set, sorted by first name, to CSV
// or XLSX byte streams. No partial output is ever returned.
type ExportService struct {
	repo   ports.EmployeeRepository
	logger zerolog.Logger
}

func NewExportService(repo ports.EmployeeRepository, logger zerolog.Logger) *ExportService {
	return &ExportService{repo: repo, logger: logger}
}

// ExportCSV returns the employee set as CSV: one header row followed by one
// row per employee.
func (s *ExportService) ExportCSV(ctx context.Context) ([]byte, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: loading employees: %v", domain.ErrExportFailed, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("%w: writing header: %v", domain.ErrExportFailed, err)
	}

	for _, e := range employees {
		record := []string{
			strconv.FormatInt(e.ID, 10),
			e.FirstName,
			e.LastName,
			e.Email,
			e.PhoneNumber,
			e.Department,
			e.Position,
			formatSalary(e.Salary),
			formatCreatedAt(e.CreatedAt),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("%w: writing row: %v", domain.ErrExportFailed, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("%w: flushing: %v", domain.ErrExportFailed, err)
	}

	s.logger.Info().Int("rows", len(employees)).Msg("csv export rendered")
	return buf.Bytes(), nil
}

// ExportExcel returns the same rows as ExportCSV in a single "Employees"
// worksheet with a bold header and content-sized columns.
func (s *ExportService) ExportExcel(ctx context.Context) ([]byte, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: loading employees: %v", domain.ErrExportFailed, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, fmt.Errorf("%w: naming sheet: %v", domain.ErrExportFailed, err)
	}

	widths := make([]int, len(exportHeaders))
	for col, header := range exportHeaders {
		cell := cellName(col, 1)
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("%w: writing header: %v", domain.ErrExportFailed, err)
		}
		widths[col] = len(header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("%w: header style: %v", domain.ErrExportFailed, err)
	}
	if err := f.SetCellStyle(exportSheetName, cellName(0, 1), cellName(len(exportHeaders)-1, 1), headerStyle); err != nil {
		return nil, fmt.Errorf("%w: header style: %v", domain.ErrExportFailed, err)
	}

	for i, e := range employees {
		row := i + 2
		values := []any{
			e.ID,
			e.FirstName,
			e.LastName,
			e.Email,
			e.PhoneNumber,
			e.Department,
			e.Position,
			e.Salary,
			formatCreatedAt(e.CreatedAt),
		}
		for col, v := range values {
			if err := f.SetCellValue(exportSheetName, cellName(col, row), v); err != nil {
				return nil, fmt.Errorf("%w: writing row: %v", domain.ErrExportFailed, err)
			}
			if w := len(fmt.Sprint(v)); w > widths[col] {
				widths[col] = w
			}
		}
	}

	// Size each column to its widest content, with a little padding.
	for col := range exportHeaders {
		name := columnName(col)
		if err := f.SetColWidth(exportSheetName, name, name, float64(widths[col])+2); err != nil {
			return nil, fmt.Errorf("%w: sizing column: %v", domain.ErrExportFailed, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: encoding workbook: %v", domain.ErrExportFailed, err)
	}

	s.logger.Info().Int("rows", len(employees)).Msg("excel export rendered")
	return buf.Bytes(), nil
}

// formatSalary renders the shortest decimal string that round-trips to the
// same float64, so exported salaries re-parse exactly.
func formatSalary(salary float64) string {
	return strconv.FormatFloat(salary, 'f', -1, 64)
}

func formatCreatedAt(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(exportTimeLayout)
}

func columnName(col int) string {
	return string(rune('A' + col))
}

func cellName(col, row int) string {
	return fmt.Sprintf("%s%d", columnName(col), row)
}
