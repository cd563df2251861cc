package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// readXLSX extracts the first sheet of a workbook as string rows.
func readXLSX(data io.Reader) ([][]string, error) {
	workbook, err := excelize.OpenReader(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}
