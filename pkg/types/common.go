package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	NO_PAGING uint64 = 0
)

// GetCurrentTimestamp 获取当前时间戳（便于测试时mock）
var GetCurrentTimestamp = func() int64 {
	return time.Now().Unix()
}

// Metadata jsonb 字段通用类型
type Metadata map[string]interface{}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		return m.scanBytes(src)
	case string:
		return m.scanBytes([]byte(src))
	case nil:
		*m = nil
		return nil
	}

	return fmt.Errorf("pq: cannot convert %T to Metadata", src)
}

func (m *Metadata) scanBytes(src []byte) error {
	if len(src) == 0 {
		*m = Metadata{}
		return nil
	}
	return json.Unmarshal(src, m)
}
