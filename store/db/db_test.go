package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/notekeeper/internal/profile"
	"github.com/hrygo/notekeeper/store/db/memory"
)

func TestNewDBDriver(t *testing.T) {
	t.Run("memory is the default", func(t *testing.T) {
		driver, err := NewDBDriver(&profile.Profile{})
		require.NoError(t, err)
		assert.IsType(t, &memory.DB{}, driver)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewDBDriver(&profile.Profile{Driver: "mysql"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "mysql")
	})
}
