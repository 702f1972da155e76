package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("valid book", func(t *testing.T) {
		b, err := New("Clean Code", "Robert Martin", "987-1234567890", 30000, nil)

		assert.NoError(t, err)
		assert.Equal(t, "Clean Code", b.Title)
		assert.Equal(t, 30000, b.Price)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		_, err := New("   ", "Robert Martin", "", 30000, nil)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("blank author rejected", func(t *testing.T) {
		_, err := New("Clean Code", "", "", 30000, nil)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		_, err := New("Clean Code", "Robert Martin", "", -1, nil)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("isbn optional", func(t *testing.T) {
		b, err := New("Clean Code", "Robert Martin", "", 30000, nil)

		assert.NoError(t, err)
		assert.Empty(t, b.ISBN)
	})
}

func TestApplyDiscount(t *testing.T) {
	newBook := func(t *testing.T) Book {
		b, err := New("Clean Code", "Robert Martin", "987-1234567890", 30000, nil)
		assert.NoError(t, err)
		return b
	}

	t.Run("10 percent", func(t *testing.T) {
		b := newBook(t)

		err := b.ApplyDiscount(10)

		assert.NoError(t, err)
		assert.Equal(t, 27000, b.Price)
	})

	t.Run("0 percent leaves price unchanged", func(t *testing.T) {
		b := newBook(t)

		err := b.ApplyDiscount(0)

		assert.NoError(t, err)
		assert.Equal(t, 30000, b.Price)
	})

	t.Run("truncates toward zero", func(t *testing.T) {
		b, err := New("Cheap Book", "Someone", "", 999, nil)
		assert.NoError(t, err)

		err = b.ApplyDiscount(10)

		assert.NoError(t, err)
		// 999 * 90 / 100 = 899.1, truncated
		assert.Equal(t, 899, b.Price)
	})

	t.Run("over 50 percent rejected", func(t *testing.T) {
		b := newBook(t)

		err := b.ApplyDiscount(60)

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, 30000, b.Price)
	})

	t.Run("negative rate rejected", func(t *testing.T) {
		b := newBook(t)

		err := b.ApplyDiscount(-10)

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, 30000, b.Price)
	})
}

func TestUpdateInfo(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	intPtr := func(n int) *int { return &n }

	t.Run("update title only", func(t *testing.T) {
		b, _ := New("Clean Code", "Robert Martin", "", 30000, nil)

		err := b.UpdateInfo(strPtr("Clean Architecture"), nil)

		assert.NoError(t, err)
		assert.Equal(t, "Clean Architecture", b.Title)
		assert.Equal(t, 30000, b.Price)
	})

	t.Run("update price only", func(t *testing.T) {
		b, _ := New("Clean Code", "Robert Martin", "", 30000, nil)

		err := b.UpdateInfo(nil, intPtr(25000))

		assert.NoError(t, err)
		assert.Equal(t, "Clean Code", b.Title)
		assert.Equal(t, 25000, b.Price)
	})

	t.Run("invalid price leaves both fields untouched", func(t *testing.T) {
		b, _ := New("Clean Code", "Robert Martin", "", 30000, nil)

		err := b.UpdateInfo(strPtr("New Title"), intPtr(-1))

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, "Clean Code", b.Title)
		assert.Equal(t, 30000, b.Price)
	})
}
