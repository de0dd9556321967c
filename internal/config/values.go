package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// GetValue retrieves a config value by dot-separated path (e.g., "database.driver").
func (c *Config) GetValue(path string) (string, error) {
	v, err := valueByPath(reflect.ValueOf(c).Elem(), path)
	if err != nil {
		return "", err
	}
	return formatValue(v), nil
}

// SetValue sets a config value by dot-separated path.
// The value is parsed based on the target field's type.
func (c *Config) SetValue(path, value string) error {
	field, err := valueByPath(reflect.ValueOf(c).Elem(), path)
	if err != nil {
		return err
	}
	if field.Kind() == reflect.Struct {
		return fmt.Errorf("config key %s is a section, not a value", path)
	}
	return setFieldValue(field, value)
}

func valueByPath(v reflect.Value, path string) (reflect.Value, error) {
	for _, name := range strings.Split(path, ".") {
		if v.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("unknown config key: %s", path)
		}
		v = findFieldByTag(v, name)
		if !v.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown config key: %s", path)
		}
	}
	return v, nil
}

// findFieldByTag finds a struct field by its yaml tag.
func findFieldByTag(v reflect.Value, name string) reflect.Value {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("yaml"), ",")[0]
		if tag == name {
			return v.Field(i)
		}
	}
	return reflect.Value{}
}

func setFieldValue(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", value, err)
		}
		field.SetInt(int64(i))
	case reflect.Bool:
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
	return nil
}

func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", value)
}

// AllConfigPaths returns every leaf config path in declaration order.
func AllConfigPaths() []string {
	var paths []string
	collectPaths(reflect.TypeOf(Config{}), "", &paths)
	return paths
}

func collectPaths(t reflect.Type, prefix string, out *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("yaml"), ",")[0]
		if name == "" {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}
		if f.Type.Kind() == reflect.Struct {
			collectPaths(f.Type, name, out)
			continue
		}
		*out = append(*out, name)
	}
}

// IsSecret reports whether a path holds a credential that should be masked on display.
func IsSecret(path string) bool {
	return strings.HasSuffix(path, ".password")
}
