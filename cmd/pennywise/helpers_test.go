package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennywise-app/pennywise/internal/ledger"
	"github.com/pennywise-app/pennywise/internal/model"
)

func TestParseAmount(t *testing.T) {
	usd := model.Account{Currency: "USD"}
	jpy := model.Account{Currency: "JPY"}

	t.Run("parses at the account's precision", func(t *testing.T) {
		minor, err := parseAmount("12.34", usd)
		require.NoError(t, err)
		assert.Equal(t, int64(1234), minor)

		minor, err = parseAmount("500", jpy)
		require.NoError(t, err)
		assert.Equal(t, int64(500), minor)
	})

	t.Run("rejects typos instead of coercing them to zero", func(t *testing.T) {
		// A zero here would be dangerous: reconciling a fresh account against
		// a silently-zeroed reported balance marks it reconciled as of today,
		// and imports then skip every candidate dated before that.
		for _, in := range []string{"12,34", "twelve", "12.3.4"} {
			_, err := parseAmount(in, usd)
			assert.ErrorIs(t, err, ledger.ErrValidation, in)
		}
	})
}
