package debugui

import (
	"reflect"
	"sync"
)

// FieldKind groups field types by the widget used to edit them.
type FieldKind int

const (
	FieldReadOnly FieldKind = iota
	FieldInt
	FieldUint
	FieldFloat
	FieldBool
	FieldString
	FieldStruct
	FieldFloatArray
)

type FieldInfo struct {
	Name  string
	Type  reflect.Type
	Index int
	Kind  FieldKind
}

type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

// GetFields returns the exported fields of a struct type. Non-struct types
// yield a single unnamed field describing the value itself.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fieldCache[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fields = append(fields, FieldInfo{
				Name:  field.Name,
				Type:  field.Type,
				Index: i,
				Kind:  kindOf(field.Type),
			})
		}
	} else {
		fields = []FieldInfo{{Name: "value", Type: t, Index: -1, Kind: kindOf(t)}}
	}

	rc.fieldCache[t] = fields
	return fields
}

func kindOf(t reflect.Type) FieldKind {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FieldInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return FieldUint
	case reflect.Float32, reflect.Float64:
		return FieldFloat
	case reflect.Bool:
		return FieldBool
	case reflect.String:
		return FieldString
	case reflect.Struct:
		return FieldStruct
	case reflect.Array:
		switch t.Elem().Kind() {
		case reflect.Float32, reflect.Float64:
			return FieldFloatArray
		}
	}
	return FieldReadOnly
}

var globalReflectionCache = NewReflectionCache()
