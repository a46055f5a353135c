package editor

import (
	"errors"
	"fmt"
)

// ErrInvalidEdit 所有编辑器校验错误都可通过 errors.Is 匹配该哨兵
// 编辑器拒绝操作时状态保持不变，编辑会话可以继续
var ErrInvalidEdit = errors.New("editor: invalid edit")

// EmptyFieldError 标识、名称、规格值或图片地址为空
type EmptyFieldError struct {
	Field string
}

func (e *EmptyFieldError) Error() string {
	switch e.Field {
	case FieldKey:
		return "规格标识不能为空"
	case FieldName:
		return "规格名称不能为空"
	case fieldValue:
		return "规格值不能为空"
	case fieldURL:
		return "请输入有效的图片URL"
	default:
		return fmt.Sprintf("%s 不能为空", e.Field)
	}
}

func (e *EmptyFieldError) Is(target error) bool { return target == ErrInvalidEdit }

// DuplicateKeyError 规格标识与其他规格项冲突
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return "规格标识已存在，请使用其他标识"
}

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrInvalidEdit }

// DuplicateValueError 同一规格项内规格值重复
type DuplicateValueError struct {
	Value string
}

func (e *DuplicateValueError) Error() string {
	return "该规格值已存在"
}

func (e *DuplicateValueError) Is(target error) bool { return target == ErrInvalidEdit }

// DuplicateUrlError 详情图地址重复
type DuplicateUrlError struct {
	URL string
}

func (e *DuplicateUrlError) Error() string {
	return "该图片URL已存在"
}

func (e *DuplicateUrlError) Is(target error) bool { return target == ErrInvalidEdit }

// IncompleteSpecError 存在未填完整的规格项，不能保存
type IncompleteSpecError struct {
	Index int    // 0 起始的规格项位置
	Field string // key / name / values
	Name  string // 规格名称，可能为空
}

func (e *IncompleteSpecError) Error() string {
	switch e.Field {
	case FieldKey:
		return "请填写所有规格的标识"
	case FieldName:
		return "请填写所有规格的名称"
	default:
		return fmt.Sprintf("规格\"%s\"至少需要一个规格值", e.Name)
	}
}

func (e *IncompleteSpecError) Is(target error) bool { return target == ErrInvalidEdit }

// IndexError 位置越界
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("位置 %d 越界 (共 %d 项)", e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool { return target == ErrInvalidEdit }

// UnknownFieldError 不可编辑的字段
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("不支持修改字段 %q", e.Field)
}

func (e *UnknownFieldError) Is(target error) bool { return target == ErrInvalidEdit }

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return &IndexError{Index: i, Len: n}
	}
	return nil
}
