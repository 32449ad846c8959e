package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"hireable-backend/internal/domain"
	"hireable-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

// MaxExportRows caps a single export.
const MaxExportRows = 10000

var exportColumns = []struct {
	header string
	value  func(c *domain.Candidate) interface{}
}{
	{"FULL NAME", func(c *domain.Candidate) interface{} { return c.FullName }},
	{"EMAIL", func(c *domain.Candidate) interface{} { return c.Email }},
	{"PHONE", func(c *domain.Candidate) interface{} { return c.Phone }},
	{"AGE", func(c *domain.Candidate) interface{} { return c.Age }},
	{"NATIONALITY", func(c *domain.Candidate) interface{} { return c.Nationality }},
	{"LOCATION", func(c *domain.Candidate) interface{} { return c.Location }},
	{"PROFESSION", func(c *domain.Candidate) interface{} { return c.Profession }},
	{"JOB TITLE", func(c *domain.Candidate) interface{} { return c.JobTitle }},
	{"YEARS OF EXPERIENCE", func(c *domain.Candidate) interface{} { return c.YearsOfExperience }},
	{"SKILLS", func(c *domain.Candidate) interface{} { return strings.Join(c.Skills, ", ") }},
	{"RESUME", func(c *domain.Candidate) interface{} { return c.ResumeURL }},
	{"JOINED", func(c *domain.Candidate) interface{} { return c.CreatedAt.Format("2006-01-02") }},
}

// Export renders every candidate matching filter as xlsx (default) or csv.
// It returns the file and a download filename.
func (u *candidateUsecase) Export(ctx context.Context, filter domain.CandidateFilter, format string) ([]byte, string, error) {
	if err := requireRecruiter(ctx); err != nil {
		return nil, "", err
	}
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "csv" {
		return nil, "", apperror.BadRequest(fmt.Sprintf("unsupported export format: %s", format))
	}

	filter.Offset = 0
	filter.Limit = MaxExportRows
	candidates, err := u.repo.SearchFull(ctx, filter)
	if err != nil {
		return nil, "", apperror.Internal(fmt.Errorf("failed to fetch candidates for export: %w", err))
	}

	var data []byte
	if format == "csv" {
		data, err = exportCSV(candidates)
	} else {
		data, err = exportExcel(candidates)
	}
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	id, _ := domain.IdentityFrom(ctx)
	u.audit.CandidateExport(ctx, id.Email, format, len(candidates))

	filename := fmt.Sprintf("candidates_%s.%s", u.now().Format("20060102_150405"), format)
	return data, filename, nil
}

func exportExcel(candidates []domain.Candidate) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Candidates"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col.header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#0F766E"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	f.SetCellStyle(sheet, "A1", endCell, headerStyle)

	for row := range candidates {
		for i, col := range exportColumns {
			cell, _ := excelize.CoordinatesToCellName(i+1, row+2)
			f.SetCellValue(sheet, cell, col.value(&candidates[row]))
		}
	}

	for i := range exportColumns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, name, name, 22)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportCSV(candidates []domain.Candidate) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(exportColumns))
	for i, col := range exportColumns {
		header[i] = col.header
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	record := make([]string, len(exportColumns))
	for i := range candidates {
		for j, col := range exportColumns {
			switch v := col.value(&candidates[i]).(type) {
			case string:
				record[j] = v
			case int:
				record[j] = strconv.Itoa(v)
			default:
				record[j] = fmt.Sprint(v)
			}
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
