// Package transfer moves whole record sets in and out of the store as flat
// CSV, the way the admin dashboard's bulk import/export works.
package transfer

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/jkuniv/studentportal/core"
	"github.com/jkuniv/studentportal/core/student"
)

// ErrSchemaMismatch aborts a whole import whose header misses required
// columns; zero rows are imported in that case.
var ErrSchemaMismatch = errors.New("CSV missing required columns")

// Store is the slice of the record store the bulk transfer needs. Import
// inserts raw rows without registration validation, matching the admin
// bulk-import semantics.
type Store interface {
	CreateStudent(s student.Student) error
	QueryAllStudents() ([]student.Student, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Export writes all records as UTF-8 CSV: a header row with the schema's
// column names in order, then one row per record in storage order.
func (svc *Service) Export(w io.Writer) error {
	records, err := svc.store.QueryAllStudents()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(student.Columns()); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for _, rec := range records {
		if err := cw.Write(rec.Record()); err != nil {
			return errors.Wrap(err, "writing record")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing CSV")
}

// Template writes a header-only CSV usable as an import template.
func (svc *Service) Template(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(student.Columns()); err != nil {
		return errors.Wrap(err, "writing header")
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing CSV")
}

// Import parses CSV from r and inserts one record per data row. The header
// must contain every schema column (extra columns and reordering are
// tolerated); otherwise ErrSchemaMismatch is returned and nothing is
// imported. Per-row failures are collected as "Row <n>: <message>" (rows
// numbered from 2, after the header) and never abort the batch; prior
// successful inserts are not rolled back.
func (svc *Service) Import(r io.Reader) (imported int, rowErrs []string, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return 0, nil, errors.Wrap(err, "reading header")
	}

	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range student.Columns() {
		if _, ok := colIdx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return 0, nil, errors.Wrapf(ErrSchemaMismatch, "missing: %s", strings.Join(missing, ", "))
	}

	for rowNum := 2; ; rowNum++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		values := make(map[string]string, len(student.Columns()))
		for _, name := range student.Columns() {
			if idx := colIdx[name]; idx < len(row) {
				values[name] = row[idx]
			}
		}
		rec := student.FromMap(values)
		// usernames are stored lowercase everywhere; an unnormalized row
		// would be unreachable through credential and admin lookups
		rec.Username = core.CleanString(rec.Username, true /* lower */)
		if err := svc.store.CreateStudent(rec); err != nil {
			rowErrs = append(rowErrs, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		imported++
	}
	return imported, rowErrs, nil
}
