// Package tabular loads tabular datasets (CSV, TSV, XLSX) keyed by geographic identifiers.
package tabular

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/geoprep/internal/dataerr"
)

// Options configures Load.
type Options struct {
	CSV  CSVOptions
	XLSX XLSXOptions
}

// Table is a header row plus the data rows beneath it.
type Table struct {
	Path   string
	Header []string
	Rows   [][]string

	index map[string]int
}

// Load reads a tabular dataset, choosing the parser by file extension:
// .xlsx uses the first (or named) worksheet, .tsv is tab-delimited, anything
// else is parsed as CSV. The first row is the header.
func Load(ctx context.Context, path string, opts Options) (*Table, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		if _, statErr := os.Stat(path); statErr != nil {
			return nil, dataerr.New(dataerr.InputNotFound, path, eris.Wrap(statErr, "tabular: stat"))
		}
		rows, err = ReadWorksheet(path, opts.XLSX)
	case ".tsv":
		csvOpts := opts.CSV
		if csvOpts.Delimiter == 0 {
			csvOpts.Delimiter = '\t'
		}
		rows, err = readCSVFile(ctx, path, csvOpts)
	default:
		rows, err = readCSVFile(ctx, path, opts.CSV)
	}
	if err != nil {
		if dataerr.KindOf(err) != dataerr.Unknown {
			return nil, err
		}
		return nil, dataerr.New(dataerr.MalformedInput, path, err)
	}

	if len(rows) == 0 {
		return nil, dataerr.New(dataerr.MalformedInput, path, eris.New("tabular: no header row"))
	}

	t := New(path, rows[0], rows[1:])
	zap.L().Debug("tabular: loaded",
		zap.String("path", path),
		zap.Int("columns", len(t.Header)),
		zap.Int("rows", len(t.Rows)),
	)
	return t, nil
}

func readCSVFile(ctx context.Context, path string, opts CSVOptions) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, dataerr.New(dataerr.InputNotFound, path, eris.Wrap(err, "tabular: open"))
	}
	defer f.Close() //nolint:errcheck

	return ReadDelimited(ctx, f, opts)
}

// New builds a Table from an in-memory header and rows.
func New(path string, header []string, rows [][]string) *Table {
	t := &Table{
		Path:   path,
		Header: header,
		Rows:   rows,
		index:  make(map[string]int, len(header)),
	}
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}
	return t
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, error) {
	idx, ok := t.index[name]
	if !ok {
		return -1, dataerr.Schema(t.Path, name, eris.Errorf("tabular: column %q not found", name))
	}
	return idx, nil
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns every value of the named column in row order. Short rows
// yield an empty string.
func (t *Table) Column(name string) ([]string, error) {
	idx, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}

	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = Cell(row, idx)
	}
	return values, nil
}

// Unique returns the distinct values of the named column in first-seen order.
func (t *Table) Unique(name string) ([]string, error) {
	values, err := t.Column(name)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(values))
	out := []string{}
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

// Index maps each value of the key column to its first row.
func (t *Table) Index(key string) (map[string][]string, error) {
	idx, err := t.ColumnIndex(key)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]string, len(t.Rows))
	for _, row := range t.Rows {
		k := Cell(row, idx)
		if _, ok := out[k]; !ok {
			out[k] = row
		}
	}
	return out, nil
}

// Cell returns row[idx], or an empty string when the row is too short.
func Cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
