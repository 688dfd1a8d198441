package library

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ziadkadry99/poe2genie/internal/build"
)

// ExportSheet is the worksheet name used by ExportXLSX.
const ExportSheet = "Builds"

// ExportXLSX writes builds as a spreadsheet, one row per build in list
// order. Each equipment slot gets its own column; the last column holds the
// share token.
func ExportXLSX(w io.Writer, builds []build.Build) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return err
	}

	header := []any{"Name", "Class", "Description", "Notes", "Passive Points"}
	for _, s := range build.Slots {
		header = append(header, string(s))
	}
	header = append(header, "Share Token")
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(ExportSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for i, b := range builds {
		token, err := build.Encode(b)
		if err != nil {
			return fmt.Errorf("encoding build %q: %w", b.Name, err)
		}
		row := []any{b.Name, string(b.CharacterClass), b.Description, b.Notes, len(b.Passives.SelectedNodes)}
		for _, s := range build.Slots {
			row = append(row, build.Describe(b.Item(s)))
		}
		row = append(row, token)
		if err := f.SetSheetRow(ExportSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(ExportSheet, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(ExportSheet, "C", "D", 40); err != nil {
		return err
	}
	if err := f.SetPanes(ExportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing spreadsheet: %w", err)
	}
	return nil
}
