package core

import (
	"fmt"
	"strings"
)

// MakeHeaderIndex creates a HeaderIndex from a header row.
// Keys are trimmed and lowercased; the first occurrence of a duplicated
// header wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := idx[key]; dup {
			continue
		}
		idx[key] = i
	}
	return idx
}

// cell returns the trimmed value of column in row.
// An empty column name, a header that is not in the index, or a row that
// ends before the column all yield "".
func cell(row Row, idx HeaderIndex, column string) string {
	if column == "" {
		return ""
	}
	pos, ok := idx[strings.ToLower(strings.TrimSpace(column))]
	if !ok || pos >= len(row.Cells) {
		return ""
	}
	return strings.TrimSpace(row.Cells[pos])
}

// ExtractFields reads the serial, MAC and FSAN values of a row.
// Missing columns and empty cells become "". Only a row the reader could
// not decode fails extraction.
func ExtractFields(row Row, idx HeaderIndex, cols ResolvedColumns) (RowFields, error) {
	if row.Err != nil {
		return RowFields{}, fmt.Errorf("read row: %w", row.Err)
	}
	return RowFields{
		Serial: cell(row, idx, cols.Serial),
		MAC:    cell(row, idx, cols.MAC),
		FSAN:   cell(row, idx, cols.FSAN),
	}, nil
}

// RenderNumbers substitutes the row's values into a numbers template.
// The replacement is literal; key=value segments are never parsed.
// All three tokens are always replaced and token text inside a value is
// removed, so the result never contains a placeholder.
func RenderNumbers(template string, f RowFields) string {
	r := strings.NewReplacer(
		TokenMAC, stripTokens(f.MAC),
		TokenSN, stripTokens(f.Serial),
		TokenFSAN, stripTokens(f.FSAN),
	)
	return strings.TrimSpace(r.Replace(template))
}

var tokenStripper = strings.NewReplacer(TokenMAC, "", TokenSN, "", TokenFSAN, "")

// stripTokens deletes placeholder tokens from a cell value. Deleting one
// token can join the halves of another ("<<M<<SN>>AC>>"), so it repeats
// until none is left.
func stripTokens(v string) string {
	for containsToken(v) {
		v = tokenStripper.Replace(v)
	}
	return v
}

func containsToken(v string) bool {
	return strings.Contains(v, TokenMAC) || strings.Contains(v, TokenSN) || strings.Contains(v, TokenFSAN)
}

// isEmptyRow reports whether every cell of the row is blank.
func isEmptyRow(row Row) bool {
	for _, v := range row.Cells {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
