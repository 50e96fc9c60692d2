package config

import (
	"fmt"
	"reflect"
	"strings"
)

// Required validates that the named fields are not zero-valued.
// Supports nested field paths using dot notation (e.g., "Pool.Name").
func Required(fields ...string) Validator {
	return ValidatorFunc(func(config interface{}) error {
		val := reflect.ValueOf(config)
		if val.Kind() == reflect.Ptr {
			val = val.Elem()
		}

		if val.Kind() != reflect.Struct {
			return fmt.Errorf("config must be a struct")
		}

		missing := make([]string, 0)

		for _, fieldName := range fields {
			fieldVal := getNestedField(val, fieldName)
			if !fieldVal.IsValid() {
				return fmt.Errorf("field %s not found in config struct", fieldName)
			}

			if fieldVal.IsZero() {
				missing = append(missing, fieldName)
			}
		}

		if len(missing) > 0 {
			return fmt.Errorf("required fields are missing: %s", strings.Join(missing, ", "))
		}

		return nil
	})
}

// IntRange validates that an integer field lies within [min, max].
// Supports nested field paths using dot notation (e.g., "Pool.Workers").
func IntRange(fieldName string, min, max int64) Validator {
	return ValidatorFunc(func(config interface{}) error {
		val := reflect.ValueOf(config)
		if val.Kind() == reflect.Ptr {
			val = val.Elem()
		}

		fieldVal := getNestedField(val, fieldName)
		if !fieldVal.IsValid() {
			return fmt.Errorf("field %s not found", fieldName)
		}

		var numVal int64
		switch fieldVal.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			numVal = fieldVal.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			numVal = int64(fieldVal.Uint())
		default:
			return fmt.Errorf("field %s is not an integer", fieldName)
		}

		if numVal < min || numVal > max {
			return fmt.Errorf("field %s = %d is out of range [%d, %d]", fieldName, numVal, min, max)
		}

		return nil
	})
}

// getNestedField resolves a dot-separated field path against a struct value
func getNestedField(val reflect.Value, path string) reflect.Value {
	parts := strings.Split(path, ".")

	for _, part := range parts {
		if val.Kind() == reflect.Ptr {
			if val.IsNil() {
				return reflect.Value{}
			}
			val = val.Elem()
		}
		if val.Kind() != reflect.Struct {
			return reflect.Value{}
		}
		val = val.FieldByName(part)
		if !val.IsValid() {
			return reflect.Value{}
		}
	}

	return val
}
