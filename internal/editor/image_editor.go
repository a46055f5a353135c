package editor

import "strings"

// ImageEditor 商品详情图列表编辑器，数组顺序即展示顺序
type ImageEditor struct {
	images []string
}

// NewImageEditor 以已有详情图初始化，输入切片会被复制
func NewImageEditor(images []string) *ImageEditor {
	return &ImageEditor{images: append([]string{}, images...)}
}

// AddImage 追加一张图片
func (e *ImageEditor) AddImage(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return &EmptyFieldError{Field: fieldURL}
	}
	if e.contains(url) {
		return &DuplicateUrlError{URL: url}
	}
	e.images = append(e.images, url)
	return nil
}

// AddImagesBatch 按行批量追加，忽略空行和已存在的地址，返回实际新增数量
func (e *ImageEditor) AddImagesBatch(text string) int {
	added := 0
	for _, line := range strings.Split(text, "\n") {
		url := strings.TrimSpace(line)
		if url == "" || e.contains(url) {
			continue
		}
		e.images = append(e.images, url)
		added++
	}
	return added
}

// RemoveImage 按位置删除
func (e *ImageEditor) RemoveImage(index int) error {
	if err := checkIndex(index, len(e.images)); err != nil {
		return err
	}
	e.images = append(e.images[:index], e.images[index+1:]...)
	return nil
}

// MoveImage 将 from 位置的图片移动到 to
func (e *ImageEditor) MoveImage(from, to int) error {
	if err := checkIndex(from, len(e.images)); err != nil {
		return err
	}
	if err := checkIndex(to, len(e.images)); err != nil {
		return err
	}
	move(e.images, from, to)
	return nil
}

// Images 当前列表副本
func (e *ImageEditor) Images() []string {
	return append([]string{}, e.images...)
}

func (e *ImageEditor) Len() int { return len(e.images) }

// Reset 清空列表
func (e *ImageEditor) Reset() {
	e.images = nil
}

func (e *ImageEditor) contains(url string) bool {
	for _, u := range e.images {
		if u == url {
			return true
		}
	}
	return false
}

// CheckImages 校验外部提交的完整详情图列表：非空且互不重复
func CheckImages(images []string) error {
	seen := make(map[string]struct{}, len(images))
	for _, u := range images {
		if strings.TrimSpace(u) == "" {
			return &EmptyFieldError{Field: fieldURL}
		}
		if _, ok := seen[u]; ok {
			return &DuplicateUrlError{URL: u}
		}
		seen[u] = struct{}{}
	}
	return nil
}
