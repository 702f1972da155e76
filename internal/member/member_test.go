package member

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("valid member", func(t *testing.T) {
		m, err := New("Hong Gildong", "abc1234@naver.com")

		assert.NoError(t, err)
		assert.Equal(t, "Hong Gildong", m.Name)
		assert.Equal(t, "abc1234@naver.com", m.Email)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		m, err := New("  Hong Gildong  ", " abc@naver.com ")

		assert.NoError(t, err)
		assert.Equal(t, "Hong Gildong", m.Name)
		assert.Equal(t, "abc@naver.com", m.Email)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := New("   ", "abc@naver.com")

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("blank email rejected", func(t *testing.T) {
		_, err := New("Hong Gildong", "")

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("email without @ rejected", func(t *testing.T) {
		_, err := New("Hong Gildong", "not-an-email")

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestRename(t *testing.T) {
	m, err := New("Hong Gildong", "abc@naver.com")
	assert.NoError(t, err)

	t.Run("valid rename", func(t *testing.T) {
		err := m.Rename("Lee Sunsin")

		assert.NoError(t, err)
		assert.Equal(t, "Lee Sunsin", m.Name)
	})

	t.Run("blank rename rejected", func(t *testing.T) {
		err := m.Rename("  ")

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, "Lee Sunsin", m.Name)
	})
}
