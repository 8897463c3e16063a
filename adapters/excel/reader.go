package excel

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"tablens/domain/core"
	"tablens/domain/table"
	"tablens/internal"
	"tablens/internal/errors"
)

// DataReader loads spreadsheet, CSV and JSON files into tables. Row arity is
// checked here so the analyses can assume a well-formed table.
type DataReader struct {
	filePath string
	format   Format
	config   ReaderConfig
	logger   *internal.Logger
}

// NewDataReader creates a reader for filePath, choosing the format from its
// extension.
func NewDataReader(filePath string) *DataReader {
	format, _ := DetectFormat(filePath)
	return &DataReader{
		filePath: filePath,
		format:   format,
		config:   DefaultReaderConfig(),
		logger:   internal.DefaultLogger,
	}
}

// WithFormat overrides the detected format.
func (r *DataReader) WithFormat(format Format) *DataReader {
	r.format = format
	return r
}

// WithConfig replaces the reader configuration.
func (r *DataReader) WithConfig(cfg ReaderConfig) *DataReader {
	r.config = cfg
	return r
}

// WithLogger replaces the logger.
func (r *DataReader) WithLogger(logger *internal.Logger) *DataReader {
	r.logger = logger
	return r
}

// ReadTable reads the file into a table.
func (r *DataReader) ReadTable() (*table.Table, error) {
	r.logger.Debug("[DataReader] reading %s file: %s", r.format, r.filePath)
	if r.format == "" {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("%w: %s", core.ErrUnsupportedInput, r.filePath))
	}

	file, err := os.Open(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound(r.filePath)
		}
		return nil, errors.Wrapf(err, "open %s", r.filePath)
	}
	defer file.Close()

	start := time.Now()
	t, err := Read(file, r.format, r.config)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", r.filePath)
	}
	r.logger.Info("[DataReader] %s loaded in %s (%d columns, %d rows)", r.filePath, time.Since(start), t.Width(), t.Len())
	return t, nil
}

// Read parses src in the given format.
func Read(src io.Reader, format Format, cfg ReaderConfig) (*table.Table, error) {
	switch format {
	case FormatXLSX:
		return readExcel(src, cfg)
	case FormatCSV:
		return readCSV(src, cfg)
	case FormatJSON:
		data, err := io.ReadAll(src)
		if err != nil {
			return nil, errors.Wrap(err, "read JSON input")
		}
		return ParseJSON(data)
	default:
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("%w: format %q", core.ErrUnsupportedInput, format))
	}
}

func readExcel(src io.Reader, cfg ReaderConfig) (*table.Table, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "open workbook"))
	}
	defer f.Close()

	sheet := cfg.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.InvalidTable("workbook has no sheets", core.ErrInvalidTable)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrapf(err, "read sheet %s", sheet))
	}
	return fromStrings(rows, cfg, spreadsheetCell)
}

func readCSV(src io.Reader, cfg ReaderConfig) (*table.Table, error) {
	reader := csv.NewReader(src)
	if cfg.Comma != 0 {
		reader.Comma = cfg.Comma
	}
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "parse CSV"))
	}
	return fromStrings(rows, cfg, textCell)
}

// spreadsheetCell keeps stored numbers numeric; everything else is text.
func spreadsheetCell(s string) table.Cell {
	if s == "" {
		return table.Null()
	}
	if n, ok := table.ParseNumber(s); ok {
		return table.Number(n)
	}
	return table.Text(s)
}

// textCell keeps CSV fields as text; numeric coercion happens at analysis.
func textCell(s string) table.Cell {
	if s == "" {
		return table.Null()
	}
	return table.Text(s)
}

// fromStrings turns a header row plus data rows into a table. Blank header
// cells are named by position, short rows are padded with Null and rows
// wider than the header are rejected.
func fromStrings(rows [][]string, cfg ReaderConfig, cell func(string) table.Cell) (*table.Table, error) {
	if len(rows) == 0 {
		return nil, errors.InvalidTable("input has no header row", core.ErrInvalidTable)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
		if headers[i] == "" {
			headers[i] = fmt.Sprintf("Column%d", i+1)
		}
	}

	data := make([][]table.Cell, 0, len(rows)-1)
	for i, raw := range rows[1:] {
		if !cfg.KeepBlankRows && blank(raw) {
			continue
		}
		if len(raw) > len(headers) {
			return nil, errors.InvalidTable("malformed row", core.NewArityError(i+1, len(raw), len(headers)))
		}
		row := make([]table.Cell, len(headers))
		for j, v := range raw {
			row[j] = cell(strings.TrimSpace(v))
		}
		data = append(data, row)
	}

	t, err := table.New(headers, data)
	if err != nil {
		return nil, errors.InvalidTable("invalid table", err)
	}
	return t, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ParseJSON accepts an array of objects (columns in first-seen key order),
// an array of arrays (first row is the header) or a single object, which is
// flattened into one row with dotted keys.
func ParseJSON(data []byte) (*table.Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "parse JSON"))
	}
	switch tok {
	case json.Delim('{'):
		var obj map[string]any
		if err := unmarshalNumbers(data, &obj); err != nil {
			return nil, err
		}
		headers, flat := table.Flatten(obj)
		return tableOrInvalid(table.FromRecords(headers, []map[string]any{flat}))
	case json.Delim('['):
		return parseJSONArray(dec)
	default:
		return nil, errors.InvalidInput("JSON input must be an object or an array")
	}
}

func parseJSONArray(dec *json.Decoder) (*table.Table, error) {
	var (
		headers []string
		seen    = make(map[string]bool)
		records []map[string]any
		matrix  [][]any
	)
	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "parse JSON array"))
		}
		switch firstByte(raw) {
		case '{':
			if matrix != nil {
				return nil, errors.InvalidInput("JSON rows mix objects and arrays")
			}
			keys, record, err := decodeObject(raw)
			if err != nil {
				return nil, err
			}
			for _, k := range keys {
				if !seen[k] {
					seen[k] = true
					headers = append(headers, k)
				}
			}
			records = append(records, record)
		case '[':
			if records != nil {
				return nil, errors.InvalidInput("JSON rows mix objects and arrays")
			}
			var row []any
			if err := unmarshalNumbers(raw, &row); err != nil {
				return nil, err
			}
			matrix = append(matrix, row)
		default:
			return nil, errors.InvalidInput("JSON array elements must be objects or arrays")
		}
	}

	if matrix != nil {
		return tableOrInvalid(table.FromMatrix(matrix))
	}
	return tableOrInvalid(table.FromRecords(headers, records))
}

// decodeObject returns the object's keys in document order with its values.
func decodeObject(raw json.RawMessage) ([]string, map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if _, err := dec.Token(); err != nil {
		return nil, nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "parse JSON object"))
	}
	var keys []string
	values := make(map[string]any)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "parse JSON key"))
		}
		key, _ := tok.(string)
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrapf(err, "parse JSON value for %q", key))
		}
		if _, dup := values[key]; !dup {
			keys = append(keys, key)
		}
		values[key] = v
	}
	return keys, values, nil
}

func unmarshalNumbers(raw json.RawMessage, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "parse JSON row"))
	}
	return nil
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func tableOrInvalid(t *table.Table, err error) (*table.Table, error) {
	if err != nil {
		return nil, errors.InvalidTable("invalid table", err)
	}
	return t, nil
}
