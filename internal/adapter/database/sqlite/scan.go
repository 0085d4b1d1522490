package sqlite

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
)

// Scanner maps result columns onto struct fields by name, db tag or the
// snake_case form of the field name.
type Scanner struct{}

func NewScanner() *Scanner {
	return &Scanner{}
}

func (s *Scanner) ScanRowsToSlice(rows *sql.Rows, dest any) error {
	destValue := reflect.ValueOf(dest)

	if destValue.Kind() != reflect.Ptr || destValue.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("dest must be a pointer to slice")
	}

	sliceValue := destValue.Elem()
	elemType := sliceValue.Type().Elem()

	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("slice elements must be structs")
	}

	columns, err := rows.Columns()

	if err != nil {
		return err
	}

	fields := make([][]int, len(columns))

	for i, column := range columns {
		if field, ok := s.findStructField(elemType, column); ok {
			fields[i] = field.Index
		}
	}

	for rows.Next() {
		elem := reflect.New(elemType).Elem()

		if err := s.scanRow(rows, elem, fields); err != nil {
			return err
		}

		sliceValue.Set(reflect.Append(sliceValue, elem))
	}

	return rows.Err()
}

func (s *Scanner) scanRow(rows *sql.Rows, elem reflect.Value, fields [][]int) error {
	scanArgs := make([]any, len(fields))

	for i, index := range fields {
		if index == nil {
			scanArgs[i] = new(any)
			continue
		}

		scanArgs[i] = elem.FieldByIndex(index).Addr().Interface()
	}

	return rows.Scan(scanArgs...)
}

func (s *Scanner) findStructField(structType reflect.Type, column string) (reflect.StructField, bool) {
	column = strings.ToLower(column)

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if tag := field.Tag.Get("db"); tag != "" && strings.ToLower(tag) == column {
			return field, true
		}
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		name := strings.ToLower(field.Name)

		if name == column || name == strings.ReplaceAll(column, "_", "") {
			return field, true
		}
	}

	return reflect.StructField{}, false
}
