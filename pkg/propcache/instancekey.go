package propcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// InstanceKeyFunc derives a stable instance identifier from identity fields.
// Used instead of NewInstanceID when instances must map to deterministic keys
// in shared storage, e.g. the same Redis prefix from every process.
type InstanceKeyFunc func(fields []any) string

// DefaultInstanceKey generates instance keys from identity fields using a
// hash-capped approach. It handles most common Go types and produces stable
// keys across processes.
func DefaultInstanceKey(fields []any) string {
	if len(fields) == 0 {
		return "no-identity"
	}

	var parts []string
	for i, field := range fields {
		parts = append(parts, fmt.Sprintf("%d:%s", i, fieldToKey(field)))
	}

	// Short keys are used directly; long ones are hashed to keep Redis key
	// sizes bounded.
	combined := strings.Join(parts, "|")
	if len(combined) <= 64 {
		return combined
	}

	hash := sha256.Sum256([]byte(combined))
	return hex.EncodeToString(hash[:])
}

// SimpleInstanceKey joins the string representations of the identity fields.
// Faster than DefaultInstanceKey but may collide for complex types.
func SimpleInstanceKey(fields []any) string {
	if len(fields) == 0 {
		return "no-identity"
	}

	var parts []string
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%v", field))
	}

	return strings.Join(parts, ":")
}

// fieldToKey converts a single identity field to a string key
func fieldToKey(field any) string {
	if field == nil {
		return "nil"
	}

	v := reflect.ValueOf(field)
	t := v.Type()

	switch t.Kind() {
	case reflect.String:
		return "s:" + v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "i:" + strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "u:" + strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return "f:" + strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case reflect.Bool:
		return "b:" + strconv.FormatBool(v.Bool())
	case reflect.Ptr:
		if v.IsNil() {
			return "ptr:nil"
		}
		return "ptr:" + fieldToKey(v.Elem().Interface())
	case reflect.Slice, reflect.Array:
		return sliceFieldKey(v)
	case reflect.Struct:
		return structFieldKey(v, t)
	case reflect.Interface:
		if v.IsNil() {
			return "iface:nil"
		}
		return "iface:" + fieldToKey(v.Elem().Interface())
	default:
		return fmt.Sprintf("%T:%v", field, field)
	}
}

// sliceFieldKey generates keys for slice and array identity fields
func sliceFieldKey(v reflect.Value) string {
	if v.Kind() == reflect.Slice && v.IsNil() {
		return "slice:nil"
	}

	length := v.Len()
	if length == 0 {
		return "slice:empty"
	}

	if length <= 10 {
		var elements []string
		for i := 0; i < length; i++ {
			elements = append(elements, fieldToKey(v.Index(i).Interface()))
		}
		return "slice:[" + strings.Join(elements, ",") + "]"
	}

	first := fieldToKey(v.Index(0).Interface())
	last := fieldToKey(v.Index(length - 1).Interface())
	return fmt.Sprintf("slice:len%d:%s...%s", length, first, last)
}

// structFieldKey generates keys for struct identity fields
func structFieldKey(v reflect.Value, t reflect.Type) string {
	numFields := v.NumField()
	if numFields == 0 {
		return "struct:empty"
	}

	var fields []string
	for i := 0; i < numFields && i < 10; i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldValue := v.Field(i)
		if !fieldValue.CanInterface() {
			continue
		}

		fields = append(fields, field.Name+":"+fieldToKey(fieldValue.Interface()))
	}

	structName := t.Name()
	if structName == "" {
		structName = "anonymous"
	}

	return "struct:" + structName + "{" + strings.Join(fields, ",") + "}"
}
