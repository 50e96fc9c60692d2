package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
)

// Validator validates a loaded configuration struct
type Validator interface {
	Validate(config interface{}) error
}

// ValidatorFunc is a function that validates configuration
type ValidatorFunc func(config interface{}) error

// Validate implements Validator interface
func (f ValidatorFunc) Validate(config interface{}) error {
	return f(config)
}

// Load loads configuration from a file (YAML or JSON)
// Automatically detects file type by extension; defaults to YAML
func Load(path string, target interface{}) error {
	if strings.HasSuffix(path, ".json") {
		return LoadJSON(path, target)
	}
	return LoadYAML(path, target)
}

// LoadWithEnv loads configuration from a file and applies environment
// variable overrides. Variables use the format PREFIX_FIELD_SUBFIELD
// (e.g., DRAINBENCH_POOL_WORKERS).
func LoadWithEnv(path string, prefix string, target interface{}) error {
	if err := Load(path, target); err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}

	if err := ApplyEnvOverrides(prefix, target); err != nil {
		return fmt.Errorf("failed to apply env overrides: %w", err)
	}

	return nil
}

// ApplyEnvOverrides applies environment variable overrides to a
// configuration struct via reflection. target must be a struct pointer.
func ApplyEnvOverrides(prefix string, target interface{}) error {
	if prefix == "" {
		prefix = "APP"
	}

	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to a struct")
	}

	return applyEnvToStruct(prefix, val.Elem())
}

// applyEnvToStruct recursively applies environment variables to struct fields
func applyEnvToStruct(prefix string, val reflect.Value) error {
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !field.CanSet() {
			continue
		}

		envKey := prefix + "_" + strings.ToUpper(fieldType.Name)
		envKey = strings.ReplaceAll(envKey, "-", "_")

		if field.Kind() == reflect.Struct {
			if err := applyEnvToStruct(envKey, field); err != nil {
				return err
			}
			continue
		}

		envValue := os.Getenv(envKey)
		if envValue == "" {
			continue
		}

		if err := setFieldFromEnv(field, envValue); err != nil {
			return fmt.Errorf("failed to set field %s from env %s: %w", fieldType.Name, envKey, err)
		}
	}

	return nil
}

// setFieldFromEnv sets a struct field value from an environment variable string
func setFieldFromEnv(field reflect.Value, envValue string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(envValue)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var intVal int64
		if _, err := fmt.Sscanf(envValue, "%d", &intVal); err != nil {
			return fmt.Errorf("invalid integer value: %s", envValue)
		}
		field.SetInt(intVal)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var uintVal uint64
		if _, err := fmt.Sscanf(envValue, "%d", &uintVal); err != nil {
			return fmt.Errorf("invalid unsigned integer value: %s", envValue)
		}
		field.SetUint(uintVal)
	case reflect.Float32, reflect.Float64:
		var floatVal float64
		if _, err := fmt.Sscanf(envValue, "%f", &floatVal); err != nil {
			return fmt.Errorf("invalid float value: %s", envValue)
		}
		field.SetFloat(floatVal)
	case reflect.Bool:
		boolVal := strings.ToLower(envValue) == "true" || envValue == "1"
		field.SetBool(boolVal)
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate runs the given validators against the configuration
func Validate(config interface{}, validators ...Validator) error {
	for _, validator := range validators {
		if err := validator.Validate(config); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}
	return nil
}
