package excel

import (
	"path/filepath"
	"strings"
)

// Format names a supported source file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, true
	case ".csv":
		return FormatCSV, true
	case ".json":
		return FormatJSON, true
	default:
		return "", false
	}
}

// ParseFormat accepts a format name as given on a command line or request.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatXLSX, FormatCSV, FormatJSON:
		return f, true
	default:
		return "", false
	}
}

// ReaderConfig controls how raw rows become a table.
type ReaderConfig struct {
	// Sheet selects a worksheet by name; empty means the first sheet.
	Sheet string `json:"sheet"`
	// Comma is the CSV field separator; zero means ','.
	Comma rune `json:"comma"`
	// KeepBlankRows retains rows whose cells are all empty.
	KeepBlankRows bool `json:"keep_blank_rows"`
}

// DefaultReaderConfig returns sensible defaults for file loading
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{Comma: ','}
}
