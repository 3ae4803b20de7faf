// Package patch provides a tri-state field for partial updates: a field can be
// absent from the request, explicitly null, or carry a value.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field 部分更新字段。Set 表示请求中出现过该字段，Valid=false 表示显式 null
type Field[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Of 构造一个带值的字段
func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Valid: true, Value: v}
}

// Null 构造一个显式 null 字段
func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Valid = false
		var zero T
		f.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// IsNull 字段出现且为 null
func (f Field[T]) IsNull() bool {
	return f.Set && !f.Valid
}

// Apply 字段出现时覆盖目标值；null 写入零值
func (f Field[T]) Apply(dst *T) {
	if !f.Set {
		return
	}
	if !f.Valid {
		var zero T
		*dst = zero
		return
	}
	*dst = f.Value
}

// ApplyPtr 字段出现时覆盖可空目标；null 置为 nil
func (f Field[T]) ApplyPtr(dst **T) {
	if !f.Set {
		return
	}
	if !f.Valid {
		*dst = nil
		return
	}
	v := f.Value
	*dst = &v
}
