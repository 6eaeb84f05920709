// Package config loads application options from a TOML file and
// BACKLIGHT_* environment variables. Precedence is CLI flags, then
// environment, then file: fields whose flags were set explicitly on
// the command line are never overwritten.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// envPrefix namespaces the environment variables this loader reads.
const envPrefix = "BACKLIGHT_"

// Load merges a TOML config file and environment variables into opts,
// which must be a pointer to a struct with `toml` (dot-notated) and
// `env` field tags. A field named Config supplies the file path; a
// missing file is not an error. When cmd is non-nil, fields whose
// flags were explicitly set on the command line are left alone.
func Load(opts any, cmd *cobra.Command) error {
	v := reflect.ValueOf(opts).Elem()
	t := v.Type()

	changed := make(map[string]bool)
	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				changed[f.Name] = true
			}
		})
	}

	var path string
	if field := v.FieldByName("Config"); field.IsValid() && field.Kind() == reflect.String {
		path = field.String()
	}

	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			var file map[string]any
			if err := toml.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}

			for i := 0; i < v.NumField(); i++ {
				key := t.Field(i).Tag.Get("toml")
				if key == "" || changed[fieldNameToFlag(t.Field(i).Name)] {
					continue
				}
				if value := lookup(file, key); value != nil {
					setField(v.Field(i), value)
				}
			}
		}
	}

	for i := 0; i < v.NumField(); i++ {
		key := t.Field(i).Tag.Get("env")
		if key == "" || changed[fieldNameToFlag(t.Field(i).Name)] {
			continue
		}
		if value := os.Getenv(envPrefix + key); value != "" {
			setFieldString(v.Field(i), value)
		}
	}

	return nil
}

// fieldNameToFlag converts a struct field name to its CLI flag name,
// e.g. "LoggingLevel" becomes "logging-level".
func fieldNameToFlag(fieldName string) string {
	var result []rune
	for i, r := range fieldName {
		if i > 0 && unicode.IsUpper(r) {
			result = append(result, '-')
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}

// lookup walks a nested TOML map using dot notation ("logging.level").
func lookup(data map[string]any, path string) any {
	parts := strings.Split(path, ".")
	current := data

	for i, part := range parts {
		if i == len(parts)-1 {
			return current[part]
		}
		next, ok := current[part].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return nil
}

func setField(field reflect.Value, value any) {
	if !field.CanSet() {
		return
	}

	switch field.Kind() {
	case reflect.String:
		if s, ok := value.(string); ok {
			field.SetString(s)
		}
	case reflect.Bool:
		if b, ok := value.(bool); ok {
			field.SetBool(b)
		}
	case reflect.Int, reflect.Int64:
		switch i := value.(type) {
		case int64:
			field.SetInt(i)
		case int:
			field.SetInt(int64(i))
		}
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return
		}
		arr, ok := value.([]any)
		if !ok {
			return
		}
		out := make([]string, 0, len(arr))
		for _, item := range arr {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		field.Set(reflect.ValueOf(out))
	}
}

func setFieldString(field reflect.Value, value string) {
	if !field.CanSet() {
		return
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		if b, err := strconv.ParseBool(value); err == nil {
			field.SetBool(b)
		}
	case reflect.Int, reflect.Int64:
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			field.SetInt(i)
		}
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return
		}
		parts := strings.Split(value, ",")
		out := make([]string, len(parts))
		for i, part := range parts {
			out[i] = strings.TrimSpace(part)
		}
		field.Set(reflect.ValueOf(out))
	}
}
