// Package csvdata reads flat impedance sweep exports. The expected file is a
// UTF-8, comma-separated table with a header row naming the columns
// Frequency_Hz, Z_real, Z_imag and Spectrum_Number in any order.
package csvdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/kacperjurak/goimpbatch"
)

// Required column names, exact and case-sensitive.
const (
	ColFrequency = "Frequency_Hz"
	ColReal      = "Z_real"
	ColImag      = "Z_imag"
	ColSpectrum  = "Spectrum_Number"
)

// SchemaError reports a required column missing from the header.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column %q in header", e.Column)
}

// RowError reports a data row that could not be converted. Line is 1-based
// and counts the header.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("malformed row at line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// columns maps the required column names to their header positions.
type columns struct {
	freq, real, imag, spectrum int
}

// ReadFile parses a sweep export into records, preserving row order. Any
// conversion failure aborts the whole read; a header-only file yields zero
// records.
func ReadFile(path string) ([]goimpbatch.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses sweep records from r. See ReadFile.
func Read(r io.Reader) ([]goimpbatch.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // column count checked per row against the header

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read header: file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var records []goimpbatch.Record
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}
		if len(row) != len(header) {
			return nil, &RowError{Line: line, Err: fmt.Errorf("expected %d fields, got %d", len(header), len(row))}
		}

		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}
		records = append(records, rec)
	}

	return records, nil
}

// mapColumns locates the required columns in the header.
func mapColumns(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	cols := columns{}
	for _, c := range []struct {
		name string
		dst  *int
	}{
		{ColFrequency, &cols.freq},
		{ColReal, &cols.real},
		{ColImag, &cols.imag},
		{ColSpectrum, &cols.spectrum},
	} {
		i, ok := index[c.name]
		if !ok {
			return columns{}, &SchemaError{Column: c.name}
		}
		*c.dst = i
	}
	return cols, nil
}

func parseRow(row []string, cols columns) (goimpbatch.Record, error) {
	freq, err := strconv.ParseFloat(row[cols.freq], 64)
	if err != nil {
		return goimpbatch.Record{}, fmt.Errorf("%s: %w", ColFrequency, err)
	}
	re, err := strconv.ParseFloat(row[cols.real], 64)
	if err != nil {
		return goimpbatch.Record{}, fmt.Errorf("%s: %w", ColReal, err)
	}
	im, err := strconv.ParseFloat(row[cols.imag], 64)
	if err != nil {
		return goimpbatch.Record{}, fmt.Errorf("%s: %w", ColImag, err)
	}
	spectrum, err := strconv.Atoi(row[cols.spectrum])
	if err != nil {
		return goimpbatch.Record{}, fmt.Errorf("%s: %w", ColSpectrum, err)
	}

	return goimpbatch.Record{
		SpectrumID: spectrum,
		Frequency:  freq,
		Real:       re,
		Imag:       im,
	}, nil
}
