package tabular

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVOptions configures delimited text parsing.
type CSVOptions struct {
	Delimiter  rune // default ','
	Comment    rune // 0 = none
	LazyQuotes bool
	TrimSpace  bool
}

// ReadDelimited parses every row of r, header included. Exports from
// spreadsheet tools often begin with a UTF-8 byte-order mark; it is dropped
// so the first column name matches. Input that is not valid UTF-8 is an
// error rather than being replaced with U+FFFD, so identifiers never change
// silently.
func ReadDelimited(ctx context.Context, r io.Reader, opts CSVOptions) ([][]string, error) {
	decoded := transform.NewReader(r, transform.Chain(
		encoding.UTF8Validator,
		unicode.BOMOverride(transform.Nop),
	))
	reader := csv.NewReader(decoded)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.Comment = opts.Comment
	reader.LazyQuotes = opts.LazyQuotes
	reader.FieldsPerRecord = -1

	var rows [][]string
	for line := 1; ; line++ {
		if line%1024 == 0 && ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "csv: context cancelled")
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "csv: read row %d", line)
		}

		if opts.TrimSpace {
			for i := range record {
				record[i] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, record)
	}

	if ctx.Err() != nil {
		return nil, eris.Wrap(ctx.Err(), "csv: context cancelled")
	}
	return rows, nil
}
