// Package csvrows decodes header-keyed CSV documents into raw rows.
package csvrows

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/normalize"
)

const bom = "\ufeff"

// Decode reads a CSV document whose first record is the header. Blank
// lines are skipped. Short records leave their trailing columns absent
// and extra cells beyond the header are ignored. name is used in errors.
func Decode(r io.Reader, name string) ([]normalize.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return []normalize.Row{}, nil
	}
	if err != nil {
		return nil, parseErr(name, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	rows := []normalize.Row{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseErr(name, err)
		}
		if blank(rec) {
			continue
		}
		row := make(normalize.Row, len(header))
		for i, col := range header {
			if col == "" || i >= len(rec) {
				continue
			}
			row[col] = rec[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseErr(name string, err error) error {
	pe := &errors.ParseError{Format: "csv", File: name, Message: err.Error(), Err: err}
	var ce *csv.ParseError
	if errors.As(err, &ce) {
		pe.Line = ce.Line
	}
	return pe
}
