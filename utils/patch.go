package utils

import (
	"reflect"
	"strings"
)

// UpdatesFromDTO builds a column->value map from every string field of a pointer DTO,
// keyed by its `form` tag (before any comma options). Empty strings are kept so GORM
// clears the column instead of skipping it.
func UpdatesFromDTO(dto any) map[string]any {
	res := make(map[string]any)
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr {
		return res
	}
	s := v.Elem()
	if s.Kind() != reflect.Struct {
		return res
	}
	t := s.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		fv := s.Field(i)
		if fv.Kind() != reflect.String {
			continue
		}
		tag := sf.Tag.Get("form")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		res[name] = fv.String()
	}
	return res
}
