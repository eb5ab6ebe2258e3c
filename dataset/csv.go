package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrNonNumeric is returned when a CSV cell cannot be parsed as a number.
var ErrNonNumeric = errors.New("non-numeric value")

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	Columns   []string // Columns to load, in this order (default: all)
	Exclude   []string // Columns to skip, e.g. the target or an ID column
	HasHeader bool     // Whether CSV has header row (default: true)
	Delimiter rune     // Field delimiter (default: ',')
	SkipRows  int      // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		HasHeader: true,
		Delimiter: ',',
	}
}

// LoadCSV loads a dataset from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Dataset, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a dataset from an io.Reader.
// Empty cells and the tokens NA, NaN, nan and null are read as missing (NaN).
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Dataset, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true
	// Preamble rows skipped by SkipRows may have any number of fields
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("no data found in CSV")
	}

	var headers []string
	if opts.HasHeader {
		for _, h := range records[0] {
			headers = append(headers, strings.TrimSpace(strings.Trim(h, "\"")))
		}
		records = records[1:]
	} else {
		for i := range records[0] {
			headers = append(headers, strconv.Itoa(i))
		}
	}

	selected, err := selectColumns(headers, opts)
	if err != nil {
		return nil, err
	}

	columns := make([]Column, len(selected))
	for j, idx := range selected {
		columns[j] = Column{Name: headers[idx], Values: make([]float64, 0, len(records))}
	}

	for line, record := range records {
		for j, idx := range selected {
			if idx >= len(record) {
				return nil, fmt.Errorf("%w: row %d is missing column %q", ErrRaggedColumns, line+1, headers[idx])
			}
			v, err := parseCell(record[idx])
			if err != nil {
				return nil, fmt.Errorf("column %q, row %d: %w", headers[idx], line+1, err)
			}
			columns[j].Values = append(columns[j].Values, v)
		}
	}

	return New(columns...)
}

func selectColumns(headers []string, opts *CSVOptions) ([]int, error) {
	exclude := make(map[string]bool, len(opts.Exclude))
	for _, name := range opts.Exclude {
		exclude[name] = true
	}

	var idx []int
	if len(opts.Columns) > 0 {
		pos := make(map[string]int, len(headers))
		for i, h := range headers {
			pos[h] = i
		}
		for _, name := range opts.Columns {
			i, ok := pos[name]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
			}
			if !exclude[name] {
				idx = append(idx, i)
			}
		}
		return idx, nil
	}

	for i, h := range headers {
		if !exclude[h] {
			idx = append(idx, i)
		}
	}
	return idx, nil
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(strings.Trim(s, "\""))
	switch s {
	case "", "NA", "NaN", "nan", "null":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNonNumeric, s)
	}
	return v, nil
}

// SaveCSV saves a dataset to a CSV file.
func SaveCSV(ds *Dataset, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteCSV(ds, file); err != nil {
		return err
	}
	return file.Close()
}

// WriteCSV writes a dataset with a header row. Missing values are written as
// empty cells.
func WriteCSV(ds *Dataset, w io.Writer) error {
	buf := bufio.NewWriter(w)
	writer := csv.NewWriter(buf)

	if err := writer.Write(ds.Names()); err != nil {
		return err
	}

	record := make([]string, ds.NumColumns())
	for i := 0; i < ds.NumRows(); i++ {
		for j := range record {
			v := ds.columns[j].Values[i]
			if math.IsNaN(v) {
				record[j] = ""
			} else {
				record[j] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return buf.Flush()
}
