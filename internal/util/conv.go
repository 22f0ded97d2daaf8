package util

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// MustParseUint 将字符串转换为无符号整数，解析失败时返回 0
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParseOptionalTime 解析可选时间，无法解析时返回 nil
func ParseOptionalTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", TimeFormat, DateFormat} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t
		}
	}
	return nil
}

// ParseID 解析 JSON 中的正整数 ID，兼容数字与字符串
func ParseID(v interface{}) (uint, bool) {
	var n int64
	switch val := v.(type) {
	case float64:
		if val != float64(int64(val)) {
			return 0, false
		}
		n = int64(val)
	case int:
		n = int64(val)
	case int64:
		n = val
	case uint:
		n = int64(val)
	case json.Number:
		i, err := val.Int64()
		if err != nil {
			return 0, false
		}
		n = i
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0, false
		}
		n = i
	default:
		return 0, false
	}
	if n <= 0 || n > math.MaxUint32 {
		return 0, false
	}
	return uint(n), true
}
