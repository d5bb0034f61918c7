package reports

import (
	"fmt"
	"io"
	"strings"

	"github.com/diewo77/computer-store/i18n"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// XLSXContentType is the MIME type of WriteXLSX output.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX renders a report as a single-sheet workbook: title, generation
// date, header, rows and the summary block.
func WriteXLSX(w io.Writer, r Report, lang string) error {
	t := r.Table(lang)
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logrus.WithError(err).Warn("xlsx: close workbook")
		}
	}()

	sheet := sheetName(t.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("xlsx: sheet name: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: style: %w", err)
	}

	row := 1
	set := func(col int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}
	boldRow := func(cols int) error {
		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(max(cols, 1), row)
		return f.SetCellStyle(sheet, first, last, bold)
	}

	if err := set(1, t.Title); err != nil {
		return err
	}
	if err := boldRow(1); err != nil {
		return err
	}
	row++
	if err := set(1, i18n.T(lang, "generated_at")); err != nil {
		return err
	}
	if err := set(2, t.GeneratedAt.String()); err != nil {
		return err
	}
	row += 2

	for i, c := range t.Columns {
		if err := set(i+1, c); err != nil {
			return err
		}
	}
	if err := boldRow(len(t.Columns)); err != nil {
		return err
	}
	row++
	for _, values := range t.Rows {
		for i, v := range values {
			if err := set(i+1, v); err != nil {
				return err
			}
		}
		row++
	}

	if len(t.Summary) > 0 {
		row++
		for _, s := range t.Summary {
			if err := set(1, s.Label); err != nil {
				return err
			}
			if err := set(2, s.Value); err != nil {
				return err
			}
			if err := boldRow(1); err != nil {
				return err
			}
			row++
		}
	}

	if len(t.Columns) > 0 {
		last, _ := excelize.ColumnNumberToName(len(t.Columns))
		if err := f.SetColWidth(sheet, "A", last, 22); err != nil {
			return fmt.Errorf("xlsx: column width: %w", err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}

// sheetName trims a title to what Excel accepts.
func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, title)
	if rs := []rune(name); len(rs) > maxSheetName {
		name = string(rs[:maxSheetName])
	}
	if name == "" {
		return "Report"
	}
	return name
}
