package weblog

import (
	"fmt"
	"reflect"
)

// A Modelable is a record the store has, or has not yet, persisted.
type Modelable interface {
	Exists() bool
}

// CastAll translates the rows a store call returns into []T,
// matching fields by their "db" tag the way CastOne does for a single row.
//
// source must be a slice, or a pointer to one.
// The pair of arguments lets CastAll wrap a store call directly:
//
//	entries, err := CastAll[Entry](db.ListEntryRows())
func CastAll[T Modelable](source any, orig error) ([]T, error) {
	if orig != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnexpected, orig)
	}

	rows := reflect.Indirect(reflect.ValueOf(source))
	if rows.Kind() != reflect.Slice {
		return nil, fmt.Errorf("%w: %T is not a slice", ErrNotImplemented, source)
	}

	dest := make([]T, rows.Len())
	for i := range dest {
		if err := copyColumns(reflect.ValueOf(&dest[i]).Elem(), rows.Index(i)); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}

	return dest, nil
}

// CastOne translates a single row into a T.
//
// Every field of source needs a "db" tag naming its column,
// and T needs a field tagged with each of those columns.
// A row whose "id" column is zero was never persisted and fails with ErrNotExist.
func CastOne[T Modelable](source any, orig error) (T, error) {
	var dest T
	if orig != nil {
		return dest, fmt.Errorf("%w: %s", ErrUnexpected, orig)
	}

	if err := copyColumns(reflect.ValueOf(&dest).Elem(), reflect.Indirect(reflect.ValueOf(source))); err != nil {
		var zero T
		return zero, err
	}

	return dest, nil
}

// copyColumns sets each field of dest from the field in row sharing its "db" tag.
func copyColumns(dest, row reflect.Value) error {
	if dest.Kind() != reflect.Struct {
		return fmt.Errorf("%w: cannot cast into %s", ErrNotImplemented, dest.Type())
	}

	if row.Kind() != reflect.Struct {
		return fmt.Errorf("%w: cannot cast from %s", ErrNotImplemented, row.Kind())
	}

	cols := columns(dest.Type())
	for _, f := range reflect.VisibleFields(row.Type()) {
		col, ok := f.Tag.Lookup("db")
		if !ok {
			return fmt.Errorf("%w: field %s has no db tag", ErrNotValid, f.Name)
		}

		val := row.FieldByIndex(f.Index)
		if col == "id" && val.IsZero() {
			return fmt.Errorf("%w: row has no id", ErrNotExist)
		}

		idx, ok := cols[col]
		if !ok {
			return fmt.Errorf("%w: no field for column %q on %s", ErrNotValid, col, dest.Type())
		}

		field := dest.FieldByIndex(idx)
		if !val.Type().AssignableTo(field.Type()) {
			return fmt.Errorf("%w: column %q is %s, not %s", ErrNotValid, col, val.Type(), field.Type())
		}

		field.Set(val)
	}

	return nil
}

// columns indexes the fields of t by their "db" tag.
func columns(t reflect.Type) map[string][]int {
	cols := make(map[string][]int)
	for _, f := range reflect.VisibleFields(t) {
		if col, ok := f.Tag.Lookup("db"); ok {
			cols[col] = f.Index
		}
	}

	return cols
}
