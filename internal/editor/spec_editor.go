package editor

import (
	"sort"
	"strings"

	"ecom_admin_v1/internal/model"
)

// 可编辑字段
const (
	FieldKey   = "key"
	FieldName  = "name"
	fieldValue = "value"
	fieldURL   = "url"
	fieldVals  = "values"
)

// State 规格编辑器状态
type State string

const (
	StateEmpty     State = "empty"     // 没有规格项
	StateEditing   State = "editing"   // 至少一个规格项未填完整
	StateValidated State = "validated" // 所有规格项完整，可以保存
)

// ItemState 单个规格项状态
type ItemState string

const (
	ItemIncomplete ItemState = "incomplete"
	ItemValid      ItemState = "valid"
)

// SpecEditor 一次编辑会话内的规格配置编辑器
// 所有修改只作用于内存副本，失败的操作不改变状态；非并发安全，由调用方串行化
type SpecEditor struct {
	specs []model.SpecItem
}

// NewSpecEditor 以已有配置初始化编辑器，cfg 为 nil 时从空配置开始
// 输入配置会被深拷贝，并按原有 sort 排序后重新编号为 1..n
func NewSpecEditor(cfg *model.SpecConfig) *SpecEditor {
	e := &SpecEditor{}
	if cfg != nil {
		e.specs = cfg.Clone().Specs
		sort.SliceStable(e.specs, func(i, j int) bool { return e.specs[i].Sort < e.specs[j].Sort })
		for i := range e.specs {
			if e.specs[i].Values == nil {
				e.specs[i].Values = []string{}
			}
		}
		e.renumber()
	}
	return e
}

// AddItem 追加一个空规格项，返回其位置
func (e *SpecEditor) AddItem() int {
	e.specs = append(e.specs, model.SpecItem{
		Values: []string{},
		Sort:   len(e.specs) + 1,
	})
	return len(e.specs) - 1
}

// UpdateItem 修改规格项的 key 或 name
// key 与其他规格项重复时返回 DuplicateKeyError，原值保留；允许暂时置空
func (e *SpecEditor) UpdateItem(index int, field, value string) error {
	if err := checkIndex(index, len(e.specs)); err != nil {
		return err
	}
	value = strings.TrimSpace(value)

	switch field {
	case FieldKey:
		if value != "" {
			for i := range e.specs {
				if i != index && e.specs[i].Key == value {
					return &DuplicateKeyError{Key: value}
				}
			}
		}
		e.specs[index].Key = value
	case FieldName:
		e.specs[index].Name = value
	default:
		return &UnknownFieldError{Field: field}
	}
	return nil
}

// RemoveItem 删除规格项并重新编号
func (e *SpecEditor) RemoveItem(index int) error {
	if err := checkIndex(index, len(e.specs)); err != nil {
		return err
	}
	e.specs = append(e.specs[:index], e.specs[index+1:]...)
	e.renumber()
	return nil
}

// MoveItem 将规格项从 from 移动到 to 并重新编号
func (e *SpecEditor) MoveItem(from, to int) error {
	if err := checkIndex(from, len(e.specs)); err != nil {
		return err
	}
	if err := checkIndex(to, len(e.specs)); err != nil {
		return err
	}
	move(e.specs, from, to)
	e.renumber()
	return nil
}

// AddValue 为规格项追加规格值
func (e *SpecEditor) AddValue(itemIndex int, value string) error {
	if err := checkIndex(itemIndex, len(e.specs)); err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return &EmptyFieldError{Field: fieldValue}
	}

	item := &e.specs[itemIndex]
	if item.Permits(value) {
		return &DuplicateValueError{Value: value}
	}
	item.Values = append(item.Values, value)
	return nil
}

// RemoveValue 按位置删除规格值
func (e *SpecEditor) RemoveValue(itemIndex, valueIndex int) error {
	if err := checkIndex(itemIndex, len(e.specs)); err != nil {
		return err
	}
	item := &e.specs[itemIndex]
	if err := checkIndex(valueIndex, len(item.Values)); err != nil {
		return err
	}
	item.Values = append(item.Values[:valueIndex], item.Values[valueIndex+1:]...)
	return nil
}

// Validate 保存前校验，返回第一个未填完整的规格项
func (e *SpecEditor) Validate() error {
	for i := range e.specs {
		if err := checkItem(i, &e.specs[i]); err != nil {
			return err
		}
	}
	return nil
}

// Len 规格项数量
func (e *SpecEditor) Len() int { return len(e.specs) }

// State 编辑器当前状态
func (e *SpecEditor) State() State {
	if len(e.specs) == 0 {
		return StateEmpty
	}
	if e.Validate() != nil {
		return StateEditing
	}
	return StateValidated
}

// ItemState 单个规格项状态
func (e *SpecEditor) ItemState(index int) (ItemState, error) {
	if err := checkIndex(index, len(e.specs)); err != nil {
		return "", err
	}
	if checkItem(index, &e.specs[index]) != nil {
		return ItemIncomplete, nil
	}
	return ItemValid, nil
}

// Config 当前配置的深拷贝，没有规格项时返回 nil (持久化为 NULL)
func (e *SpecEditor) Config() *model.SpecConfig {
	if len(e.specs) == 0 {
		return nil
	}
	return (&model.SpecConfig{Specs: e.specs}).Clone()
}

// Reset 清空所有规格项
func (e *SpecEditor) Reset() {
	e.specs = nil
}

func (e *SpecEditor) renumber() {
	for i := range e.specs {
		e.specs[i].Sort = i + 1
	}
}

func checkItem(index int, item *model.SpecItem) error {
	switch {
	case strings.TrimSpace(item.Key) == "":
		return &IncompleteSpecError{Index: index, Field: FieldKey, Name: item.Name}
	case strings.TrimSpace(item.Name) == "":
		return &IncompleteSpecError{Index: index, Field: FieldName, Name: item.Name}
	case len(item.Values) == 0:
		return &IncompleteSpecError{Index: index, Field: fieldVals, Name: item.Name}
	}
	return nil
}

// ValidateConfig 校验外部提交的完整配置 (整体替换时使用)
// 除完整性外还检查 key 唯一、规格值非空且项内唯一、sort 为 1..n
func ValidateConfig(cfg *model.SpecConfig) error {
	if cfg.IsEmpty() {
		return nil
	}
	keys := make(map[string]struct{}, len(cfg.Specs))
	for i := range cfg.Specs {
		item := &cfg.Specs[i]
		if err := checkItem(i, item); err != nil {
			return err
		}
		if _, ok := keys[item.Key]; ok {
			return &DuplicateKeyError{Key: item.Key}
		}
		keys[item.Key] = struct{}{}

		seen := make(map[string]struct{}, len(item.Values))
		for _, v := range item.Values {
			if strings.TrimSpace(v) == "" {
				return &EmptyFieldError{Field: fieldValue}
			}
			if _, ok := seen[v]; ok {
				return &DuplicateValueError{Value: v}
			}
			seen[v] = struct{}{}
		}
	}
	return nil
}

// NormalizeConfig 去除首尾空白、按 sort 稳定排序并重新编号，返回新副本
func NormalizeConfig(cfg *model.SpecConfig) *model.SpecConfig {
	if cfg.IsEmpty() {
		return nil
	}
	out := cfg.Clone()
	sort.SliceStable(out.Specs, func(i, j int) bool { return out.Specs[i].Sort < out.Specs[j].Sort })
	for i := range out.Specs {
		item := &out.Specs[i]
		item.Key = strings.TrimSpace(item.Key)
		item.Name = strings.TrimSpace(item.Name)
		for j := range item.Values {
			item.Values[j] = strings.TrimSpace(item.Values[j])
		}
		item.Sort = i + 1
	}
	return out
}

// move 将 s[from] 移动到 to，其余元素顺序不变
func move[T any](s []T, from, to int) {
	if from == to {
		return
	}
	v := s[from]
	if from < to {
		copy(s[from:to], s[from+1:to+1])
	} else {
		copy(s[to+1:from+1], s[to:from])
	}
	s[to] = v
}
