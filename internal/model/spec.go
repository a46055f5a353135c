package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ==================== 规格配置 ====================

// SpecItem 规格项，如 颜色: [红, 蓝]
type SpecItem struct {
	Key    string   `json:"key"`    // 规格标识，商品内唯一
	Name   string   `json:"name"`   // 展示名称
	Values []string `json:"values"` // 可选值，按添加顺序
	Sort   int      `json:"sort"`   // 1 起始的位置
}

// SpecConfig 商品规格配置，对应 products.spec_config
// 每次保存整体替换
type SpecConfig struct {
	Specs []SpecItem `json:"specs"`
}

// Clone 深拷贝
func (c *SpecConfig) Clone() *SpecConfig {
	if c == nil {
		return nil
	}
	out := &SpecConfig{Specs: make([]SpecItem, len(c.Specs))}
	for i, item := range c.Specs {
		item.Values = append([]string{}, item.Values...)
		out.Specs[i] = item
	}
	return out
}

// IsEmpty 没有任何规格项
func (c *SpecConfig) IsEmpty() bool {
	return c == nil || len(c.Specs) == 0
}

// Lookup 按 key 查找规格项
func (c *SpecConfig) Lookup(key string) (*SpecItem, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Specs {
		if c.Specs[i].Key == key {
			return &c.Specs[i], true
		}
	}
	return nil, false
}

// Permits 该规格项是否允许取值 value
func (s *SpecItem) Permits(value string) bool {
	for _, v := range s.Values {
		if v == value {
			return true
		}
	}
	return false
}

// Value 序列化为 JSON，空配置存 NULL
func (c SpecConfig) Value() (driver.Value, error) {
	if len(c.Specs) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 从 JSON 反序列化
func (c *SpecConfig) Scan(src interface{}) error {
	*c = SpecConfig{}
	b, err := jsonBytes(src)
	if err != nil || len(b) == 0 {
		return err
	}
	if err := json.Unmarshal(b, c); err != nil {
		return fmt.Errorf("解析 spec_config 失败: %w", err)
	}
	return nil
}

// GormDataType schema 解析使用的通用类型
func (SpecConfig) GormDataType() string {
	return "json"
}

// GormDBDataType postgres 使用 jsonb，其他方言 (测试用 sqlite) 使用 json
func (SpecConfig) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonColumnType(db)
}

// ==================== SKU 规格取值 ====================

var specKeyEscaper = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `=`, `\=`)

// SpecValues SKU 选中的规格组合 spec key -> value，对应 spec_values
type SpecValues map[string]string

// CanonicalKey 规格组合的规范化表示，按 key 排序后拼接 "k=v;k=v"
// key 与 value 中的 \ ; = 以反斜杠转义，不同组合不会得到相同结果
// 空组合返回空串
func (v SpecValues) CanonicalKey() string {
	if len(v) == 0 {
		return ""
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(specKeyEscaper.Replace(k))
		sb.WriteByte('=')
		sb.WriteString(specKeyEscaper.Replace(v[k]))
	}
	return sb.String()
}

func (v SpecValues) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(map[string]string(v))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (v *SpecValues) Scan(src interface{}) error {
	*v = nil
	b, err := jsonBytes(src)
	if err != nil || len(b) == 0 {
		return err
	}
	m := map[string]string{}
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("解析 spec_values 失败: %w", err)
	}
	*v = m
	return nil
}

func (SpecValues) GormDataType() string {
	return "json"
}

func (SpecValues) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonColumnType(db)
}

// ==================== 字符串数组 ====================

// StringArray postgres text[]，编码沿用 pq.StringArray
// sqlite 下按 text 存储同样的数组字面量
type StringArray pq.StringArray

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return pq.StringArray(a).Value()
}

func (a *StringArray) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*a = StringArray(arr)
	return nil
}

func (StringArray) GormDataType() string {
	return "text"
}

func (StringArray) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// ==================== 辅助 ====================

func jsonColumnType(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "json"
}

func jsonBytes(src interface{}) ([]byte, error) {
	switch s := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return s, nil
	case string:
		return []byte(s), nil
	default:
		return nil, fmt.Errorf("不支持的 JSON 列类型 %T", src)
	}
}
