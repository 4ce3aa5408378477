package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Table is a CSV table held as strings.
type Table struct {
	Header  []string
	Records [][]string
}

// Len returns the number of records.
func (t Table) Len() int {
	return len(t.Records)
}

// WriteCSV writes t to path, replacing any existing file atomically.
func WriteCSV(path string, t Table) error {
	return writeAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(t.Header); err != nil {
			return err
		}
		if err := cw.WriteAll(t.Records); err != nil {
			return err
		}
		return cw.Error()
	})
}

// ReadCSV reads a table whose first record is the header. A missing file
// returns fs.ErrNotExist; an empty file returns an empty table.
func ReadCSV(path string) (Table, error) {
	f, err := os.Open(path) //#nosec G304 -- path is built from the configured data dir
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return Table{}, nil
	}
	return Table{Header: records[0], Records: records[1:]}, nil
}

// AppendHistory appends batch to the table stored at path and rewrites it.
// Existing records come first and are never changed or deduplicated. When the
// stored header differs from batch's, the result has every stored column in
// its original order followed by batch's new columns; missing cells are empty.
// It returns the table as written.
func AppendHistory(path string, batch Table) (Table, error) {
	existing, err := ReadCSV(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Table{}, fmt.Errorf("read history: %w", err)
	}

	merged := concat(existing, batch)
	if err := WriteCSV(path, merged); err != nil {
		return Table{}, fmt.Errorf("write history: %w", err)
	}
	return merged, nil
}

func concat(existing, batch Table) Table {
	if len(existing.Header) == 0 {
		return batch
	}

	header := append([]string(nil), existing.Header...)
	pos := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}
	for _, name := range batch.Header {
		if _, ok := pos[name]; !ok {
			pos[name] = len(header)
			header = append(header, name)
		}
	}

	out := Table{
		Header:  header,
		Records: make([][]string, 0, len(existing.Records)+len(batch.Records)),
	}
	for _, rec := range existing.Records {
		row := make([]string, len(header))
		copy(row, rec)
		out.Records = append(out.Records, row)
	}
	for _, rec := range batch.Records {
		row := make([]string, len(header))
		for i, cell := range rec {
			if i < len(batch.Header) {
				row[pos[batch.Header[i]]] = cell
			}
		}
		out.Records = append(out.Records, row)
	}
	return out
}
