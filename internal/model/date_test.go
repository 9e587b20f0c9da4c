package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date round-trips", func(t *testing.T) {
		d, err := ParseDate("2024-03-15")
		require.NoError(t, err)
		assert.Equal(t, "2024-03-15", d.String())
		assert.Equal(t, NewDate(2024, time.March, 15), d)
	})

	t.Run("empty string is the zero date", func(t *testing.T) {
		d, err := ParseDate("")
		require.NoError(t, err)
		assert.True(t, d.IsZero())
		assert.Equal(t, "", d.String())
	})

	t.Run("malformed dates error", func(t *testing.T) {
		for _, s := range []string{"15/03/2024", "2024-13-01", "yesterday"} {
			_, err := ParseDate(s)
			assert.Error(t, err, s)
		}
	})
}

func TestDateOrdering(t *testing.T) {
	early := NewDate(2024, time.January, 2)
	late := NewDate(2024, time.January, 3)
	assert.True(t, early.Before(late))
	assert.False(t, late.Before(early))
	assert.False(t, early.Before(early))
	assert.True(t, late.After(early))
}

func TestDedupKey(t *testing.T) {
	m := Movement{
		AccountID:   "1",
		Date:        NewDate(2024, time.June, 1),
		Amount:      -2000,
		Description: "Coffee",
	}
	assert.Equal(t, "2024-06-01|1|-2000|Coffee", m.DedupKey())
}
