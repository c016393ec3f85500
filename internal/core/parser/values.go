package parser

import (
	"fmt"
	"strconv"
)

// Values maps argument names to their resolved values: string, []string for
// multi-file arguments, bool or int. Arguments that resolved to nothing are absent.
type Values map[string]interface{}

func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

func (v Values) Int(name string) int {
	switch n := v[name].(type) {
	case int:
		return n
	case string:
		i, _ := strconv.Atoi(n)
		return i
	}
	return 0
}

func (v Values) String(name string) string {
	return Stringify(v[name])
}

func (v Values) Strings(name string) []string {
	switch s := v[name].(type) {
	case []string:
		return s
	case []interface{}:
		out := make([]string, 0, len(s))
		for _, item := range s {
			out = append(out, Stringify(item))
		}
		return out
	case string:
		if s == "" {
			return nil
		}
		return []string{s}
	}
	return nil
}

// Stringify renders a single resolved value the way it appears on a command line.
func Stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
