package postgres

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonColumn maps a Go value to a jsonb column. A nil pointer is stored as NULL.
type jsonColumn struct {
	v any
}

func jsonb(v any) jsonColumn { return jsonColumn{v: v} }

func (j jsonColumn) Value() (driver.Value, error) {
	if j.v == nil {
		return nil, nil
	}
	if rv := reflect.ValueOf(j.v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, nil
	}
	b, err := json.Marshal(j.v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode jsonb: %w", err)
	}
	return b, nil
}

// Scan decodes into j.v, which must be a pointer
func (j jsonColumn) Scan(src any) error {
	var raw []byte
	switch s := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = s
	case string:
		raw = []byte(s)
	default:
		return fmt.Errorf("unsupported jsonb source %T", src)
	}
	if err := json.Unmarshal(raw, j.v); err != nil {
		return fmt.Errorf("failed to decode jsonb: %w", err)
	}
	return nil
}
