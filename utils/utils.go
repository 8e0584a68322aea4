package utils

import (
	"cardpulse/internal/consts"
	"database/sql/driver"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// RandString generate rand string with specified length
func RandString(length int) string {
	str := "0123456789abcdefghijklmnopqrstuvwxyz"
	data := []byte(str)
	var result []byte
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < length; i++ {
		result = append(result, data[r.Intn(len(data))])
	}
	return string(result)
}

// Stamp2str 时间戳转字符串
func Stamp2str(timestamp int64) string {
	if timestamp == 0 {
		return ""
	}
	return time.Unix(timestamp, 0).Format(consts.TimeLayout)
}

// Str2stamp 字符串转时间戳
func Str2stamp(str string) int64 {
	t, err := time.Parse(consts.TimeLayout, str)
	if err != nil {
		return 0
	}
	return t.Unix()
}

// NormalizeText 规范化文本用于模糊匹配：小写、去标点、折叠空白
func NormalizeText(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// JsonTime gorm实体的时间字段，序列化成固定格式
type JsonTime time.Time

func (t JsonTime) MarshalJSON() ([]byte, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("\"%s\"", tt.Format(consts.TimeLayout))), nil
}

func (t JsonTime) Value() (driver.Value, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return nil, nil
	}
	return tt, nil
}

func (t *JsonTime) Scan(v interface{}) error {
	if value, ok := v.(time.Time); ok {
		*t = JsonTime(value)
		return nil
	}
	return fmt.Errorf("can not convert %v to timestamp", v)
}
