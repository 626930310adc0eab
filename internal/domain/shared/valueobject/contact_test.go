package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContact(t *testing.T) {
	t.Run("valid contact is normalized", func(t *testing.T) {
		c, err := NewContact("  山田 太郎 ", " Taro@Example.JP ", "03-1234-5678")
		require.NoError(t, err)
		assert.Equal(t, "山田 太郎", c.Name())
		assert.Equal(t, "taro@example.jp", c.Email())
		assert.Equal(t, "03-1234-5678", c.Phone())
		assert.False(t, c.IsEmpty())
	})

	t.Run("empty contact is allowed", func(t *testing.T) {
		c, err := NewContact("", "", "")
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := NewContact("a", "not-an-email", "")
		assert.Error(t, err)
	})

	t.Run("invalid phone", func(t *testing.T) {
		_, err := NewContact("a", "", "phone")
		assert.Error(t, err)
	})
}
