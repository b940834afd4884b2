package sheet

import "strings"

// EscapeCell quotes a cell holding a tab, newline, carriage return or
// double quote, doubling inner quotes.
func EscapeCell(cell string) string {
	if !strings.ContainsAny(cell, "\t\n\r\"") {
		return cell
	}

	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

// EncodeTSV joins escaped cells with tabs. A nil row encodes to "".
func EncodeTSV(row Row) string {
	cells := make([]string, len(row))
	for i, c := range row {
		cells[i] = EscapeCell(c)
	}

	return strings.Join(cells, "\t")
}
