// Package export renders aggregated response data as CSV for the admin
// download endpoints.
package export

import (
	"bytes"
	"strings"
)

// BOM is prefixed to every document so spreadsheet tools detect UTF-8
// and render Thai text correctly.
const BOM = "\uFEFF"

// escape wraps a field in double quotes and doubles any literal quote.
// Every field is quoted, headers included, so free-text question prompts
// containing commas or quotes can never shift columns.
func escape(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// ToCSV renders a header row plus data rows into a BOM-prefixed CSV
// document with LF-joined rows.
func ToCSV(header []string, rows [][]string) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString(BOM)
	writeRow(buf, header)
	for _, row := range rows {
		buf.WriteByte('\n')
		writeRow(buf, row)
	}
	return buf.Bytes()
}

func writeRow(buf *bytes.Buffer, row []string) {
	for i, field := range row {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(escape(field))
	}
}
