package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageEditor_AddImage(t *testing.T) {
	e := NewImageEditor(nil)

	require.NoError(t, e.AddImage(" https://cdn/a.jpg "))
	err := e.AddImage("https://cdn/a.jpg")
	var dup *DuplicateUrlError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "该图片URL已存在", err.Error())

	err = e.AddImage("  ")
	assert.ErrorIs(t, err, ErrInvalidEdit)
	assert.Equal(t, "请输入有效的图片URL", err.Error())

	assert.Equal(t, []string{"https://cdn/a.jpg"}, e.Images())
}

func TestImageEditor_AddImagesBatch(t *testing.T) {
	e := NewImageEditor([]string{"a"})

	n := e.AddImagesBatch("b\n\n  a \nc\r\nb\n   \n")
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a", "b", "c"}, e.Images())

	assert.Equal(t, 0, e.AddImagesBatch("a\nb"))
	assert.Equal(t, 3, e.Len())
}

func TestImageEditor_MoveAndRemove(t *testing.T) {
	e := NewImageEditor([]string{"a", "b", "c"})

	require.NoError(t, e.MoveImage(2, 0))
	assert.Equal(t, []string{"c", "a", "b"}, e.Images())

	require.NoError(t, e.MoveImage(0, 2))
	assert.Equal(t, []string{"a", "b", "c"}, e.Images())

	assert.ErrorIs(t, e.MoveImage(0, 3), ErrInvalidEdit)
	require.NoError(t, e.RemoveImage(1))
	assert.Equal(t, []string{"a", "c"}, e.Images())
	assert.ErrorIs(t, e.RemoveImage(5), ErrInvalidEdit)

	e.Reset()
	assert.Empty(t, e.Images())
}

func TestImageEditor_SeedIsCopied(t *testing.T) {
	seed := []string{"a", "b"}
	e := NewImageEditor(seed)
	require.NoError(t, e.RemoveImage(0))
	assert.Equal(t, []string{"a", "b"}, seed)

	out := e.Images()
	out[0] = "x"
	assert.Equal(t, []string{"b"}, e.Images())
}

func TestCheckImages(t *testing.T) {
	assert.NoError(t, CheckImages(nil))
	assert.NoError(t, CheckImages([]string{"a", "b"}))
	assert.IsType(t, &DuplicateUrlError{}, CheckImages([]string{"a", "a"}))
	assert.IsType(t, &EmptyFieldError{}, CheckImages([]string{"a", ""}))
}
