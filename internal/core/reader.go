package core

// reader.go loads an uploaded inventory file into a Table.
//
// Two formats are accepted, chosen by file extension:
//   - Delimited text (.csv, .tsv, .txt): decoded to UTF-8 first (BOM-aware,
//     UTF-16 with BOM, Windows-1252 fallback), delimiter sniffed from the
//     header line. Malformed quoting fails only the affected row.
//   - Spreadsheets (.xlsx, .xlsm): the first worksheet is read.
//
// In both cases the first non-blank row is the header row. Header text is
// trimmed and NFC-normalized once here, so column resolution never sees
// surrounding whitespace.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxFileSize is used when ReadTable is given a non-positive limit (100MB).
const DefaultMaxFileSize int64 = 100 * 1024 * 1024

var (
	// ErrEmptyFile is returned when the file has no header row.
	ErrEmptyFile = errors.New("empty file: no header row found")

	// ErrUnsupportedFileType is returned for extensions other than csv/xlsx.
	ErrUnsupportedFileType = errors.New("unsupported file type (expected .csv or .xlsx)")
)

// FileTooLargeError is returned when the upload exceeds the size limit.
type FileTooLargeError struct {
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file too large: exceeds %dMB limit", e.Limit/(1024*1024))
}

// UnreadableFileError wraps any failure to parse the input file.
type UnreadableFileError struct {
	FileName string
	Err      error
}

func (e *UnreadableFileError) Error() string {
	return fmt.Sprintf("unreadable input file %q: %v", e.FileName, e.Err)
}

func (e *UnreadableFileError) Unwrap() error {
	return e.Err
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// candidateDelimiters are tried in order; ties go to the earlier one.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

// ReadTable reads an inventory file of at most maxSize bytes.
func ReadTable(fileName string, r io.Reader, maxSize int64) (*Table, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, &UnreadableFileError{FileName: fileName, Err: err}
	}
	if int64(len(data)) > maxSize {
		return nil, &FileTooLargeError{Limit: maxSize}
	}

	var table *Table
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv", ".tsv", ".txt":
		table, err = readDelimited(data)
	case ".xlsx", ".xlsm":
		table, err = readWorkbook(data)
	default:
		err = ErrUnsupportedFileType
	}
	if err != nil {
		return nil, &UnreadableFileError{FileName: fileName, Err: err}
	}

	table.FileName = fileName
	return table, nil
}

// readDelimited parses delimited text. Records the csv reader rejects are
// kept as rows carrying the parse error so the conversion can skip them.
//
// A quote that is never closed makes the csv reader consume the rest of the
// file as one field. When a rejected record spans several lines, parsing
// restarts on the line after the one where it began, so only that line is
// lost.
func readDelimited(data []byte) (*Table, error) {
	data = decodeText(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	comma := detectDelimiter(data)
	table := &Table{}
	offset, base := 0, 0 // byte offset of the current reader and its first line - 1

	for offset < len(data) {
		restart, err := readRecords(table, data[offset:], comma, base)
		if err != nil {
			return nil, err
		}
		if restart == 0 {
			break
		}
		offset += lineStart(data[offset:], restart-base)
		base = restart - 1
	}

	if table.Headers == nil {
		return nil, ErrEmptyFile
	}
	return table, nil
}

// readRecords appends the records of data to table. Line numbers are
// shifted by base. It returns the absolute line to resume parsing at, or 0
// when data was read to the end.
func readRecords(table *Table, data []byte, comma rune, base int) (int, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	r.FieldsPerRecord = -1

	for {
		record, err := r.Read()
		if err == io.EOF {
			return 0, nil
		}
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return 0, fmt.Errorf("parse csv: %w", err)
			}
			if table.Headers == nil {
				return 0, fmt.Errorf("parse csv header: %w", err)
			}
			table.Rows = append(table.Rows, Row{Line: base + pe.StartLine, Err: pe.Err})
			if pe.Line > pe.StartLine {
				return base + pe.StartLine + 1, nil
			}
			continue
		}

		line, _ := r.FieldPos(0)
		if table.Headers == nil {
			if isBlank(record) {
				continue
			}
			table.Headers = normalizeHeaders(record)
			continue
		}
		table.Rows = append(table.Rows, Row{Line: base + line, Cells: record})
	}
}

// lineStart returns the byte offset of the 1-indexed line n in data, or
// len(data) if data has fewer lines.
func lineStart(data []byte, n int) int {
	offset := 0
	for i := 1; i < n; i++ {
		j := bytes.IndexByte(data[offset:], '\n')
		if j < 0 {
			return len(data)
		}
		offset += j + 1
	}
	return offset
}

// readWorkbook reads the first worksheet of an XLSX workbook.
func readWorkbook(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	defer rows.Close()

	table := &Table{}
	line := 0
	for rows.Next() {
		line++
		cols, err := rows.Columns()

		if table.Headers == nil {
			if err != nil {
				return nil, fmt.Errorf("read header row: %w", err)
			}
			if isBlank(cols) {
				continue
			}
			table.Headers = normalizeHeaders(cols)
			continue
		}
		table.Rows = append(table.Rows, Row{Line: line, Cells: cols, Err: err})
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	if table.Headers == nil {
		return nil, ErrEmptyFile
	}
	return table, nil
}

// decodeText converts file bytes to UTF-8.
// A BOM selects UTF-8 or UTF-16; BOM-less data that is not valid UTF-8 is
// treated as Windows-1252, which is what spreadsheet tools export by default.
func decodeText(data []byte) []byte {
	if bytes.HasPrefix(data, bomUTF8) || bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE) {
		decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		if err == nil {
			return decoded
		}
	}

	if utf8.Valid(data) {
		return data
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return bytes.ToValidUTF8(data, []byte("�"))
	}
	return decoded
}

// detectDelimiter picks the candidate delimiter that occurs most often in
// the first line. Defaults to comma.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	best, bestCount := ',', 0
	for _, d := range candidateDelimiters {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// normalizeHeaders trims and NFC-normalizes header cells.
func normalizeHeaders(record []string) []string {
	headers := make([]string, len(record))
	for i, h := range record {
		headers[i] = norm.NFC.String(strings.TrimSpace(h))
	}
	return headers
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
