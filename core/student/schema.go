package student

import "reflect"

// Column is one entry of the schema descriptor: the canonical ordered set of
// columns every stored record must have. The descriptor is derived from the
// Student struct's `db` tags so it is never maintained in two places.
type Column struct {
	Name string
	Type string
}

var (
	schema     []Column
	fieldIndex map[string]int // column name -> Student field index
)

func init() {
	t := reflect.TypeOf(Student{})
	schema = make([]Column, 0, t.NumField())
	fieldIndex = make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		fld := t.Field(i)
		name := fld.Tag.Get("db")
		if name == "" || name == "-" {
			continue
		}
		ctype := "TEXT"
		if ddl := fld.Tag.Get("ddl"); ddl != "" {
			ctype += " " + ddl
		}
		schema = append(schema, Column{Name: name, Type: ctype})
		fieldIndex[name] = i
	}
}

// Schema returns the ordered column descriptor.
func Schema() []Column {
	cols := make([]Column, len(schema))
	copy(cols, schema)
	return cols
}

// Columns returns the descriptor's column names in order.
func Columns() []string {
	names := make([]string, len(schema))
	for i, col := range schema {
		names[i] = col.Name
	}
	return names
}

// FromMap builds a Student from a column-name keyed map; absent columns
// become empty strings.
func FromMap(values map[string]string) Student {
	var s Student
	v := reflect.ValueOf(&s).Elem()
	for name, idx := range fieldIndex {
		v.Field(idx).SetString(values[name])
	}
	return s
}

// Record returns the student's values in descriptor order.
func (s Student) Record() []string {
	v := reflect.ValueOf(s)
	rec := make([]string, len(schema))
	for i, col := range schema {
		rec[i] = v.Field(fieldIndex[col.Name]).String()
	}
	return rec
}
