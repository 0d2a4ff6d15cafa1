package handlers

import (
	"encoding/json"
	"net/http"
	"reflect"
	"time"
)

// JSONResponse encodes data as JSON and ensures nil slices are encoded as []
// instead of null, which frontends expecting arrays cannot handle.
func JSONResponse(w http.ResponseWriter, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(normalizeSlices(data))
}

// normalizeSlices recursively replaces nil slices with empty ones
func normalizeSlices(data interface{}) interface{} {
	if data == nil {
		return data
	}

	v := reflect.ValueOf(data)

	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() || v.Elem().Type() == reflect.TypeOf(time.Time{}) {
			return data
		}
		result := reflect.New(v.Elem().Type())
		result.Elem().Set(reflect.ValueOf(normalizeSlices(v.Elem().Interface())))
		return result.Interface()

	case reflect.Slice:
		if v.IsNil() {
			return reflect.MakeSlice(v.Type(), 0, 0).Interface()
		}
		result := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			result.Index(i).Set(reflect.ValueOf(normalizeSlices(v.Index(i).Interface())))
		}
		return result.Interface()

	case reflect.Map:
		if v.IsNil() {
			return data
		}
		result := reflect.MakeMap(v.Type())
		for _, key := range v.MapKeys() {
			result.SetMapIndex(key, reflect.ValueOf(normalizeSlices(v.MapIndex(key).Interface())))
		}
		return result.Interface()

	case reflect.Struct:
		if v.Type() == reflect.TypeOf(time.Time{}) {
			return data
		}
		result := reflect.New(v.Type()).Elem()
		for i := 0; i < v.NumField(); i++ {
			field := v.Field(i)
			if !field.CanInterface() || !result.Field(i).CanSet() {
				continue
			}
			switch field.Kind() {
			case reflect.Slice, reflect.Ptr, reflect.Struct, reflect.Map:
				result.Field(i).Set(reflect.ValueOf(normalizeSlices(field.Interface())))
			default:
				result.Field(i).Set(field)
			}
		}
		return result.Interface()
	}

	return data
}
