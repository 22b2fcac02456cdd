package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/cv-analyzer/internal/cvanalysis"
	"github.com/spigell/cv-analyzer/internal/store"
)

// SheetName is the worksheet holding exported analyses.
const SheetName = "Analyses"

const (
	listSeparator   = ", "
	maxSummaryChars = 500
)

var headers = []string{
	"ID",
	"Analyzed At",
	"Full Name",
	"Email",
	"Phone",
	"Expertise",
	"Experience Years",
	"Skills",
	"Job Titles",
	"Education",
	"Summary",
}

// WriteXLSX renders stored analyses as an XLSX workbook, one row per record.
func WriteXLSX(records []*store.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header %q: %w", h, err)
		}
	}

	for i, rec := range records {
		row := i + 2
		values := []any{
			rec.ID,
			rec.AnalyzedAt.UTC().Format("2006-01-02 15:04:05"),
			rec.FullName,
			deref(rec.Email),
			deref(rec.Phone),
			rec.Expertise,
			rec.ExperienceYears,
			strings.Join(rec.Skills, listSeparator),
			strings.Join(rec.JobTitles, listSeparator),
			formatEducation(rec.Education),
			truncate(rec.Summary, maxSummaryChars),
		}

		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write record %d: %w", rec.ID, err)
			}
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 8)  // id
	_ = f.SetColWidth(SheetName, "B", "B", 20) // analyzed at
	_ = f.SetColWidth(SheetName, "C", "E", 26) // contacts
	_ = f.SetColWidth(SheetName, "F", "G", 18) // expertise, years
	_ = f.SetColWidth(SheetName, "H", "J", 40) // lists
	_ = f.SetColWidth(SheetName, "K", "K", 80) // summary

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func formatEducation(entries []cvanalysis.Education) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		part := e.Degree
		if e.Year != nil {
			part = fmt.Sprintf("%s (%s)", part, *e.Year)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
