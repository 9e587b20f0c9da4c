package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/pennywise-app/pennywise/internal/codec"
	"github.com/pennywise-app/pennywise/internal/ledger"
	"github.com/pennywise-app/pennywise/internal/model"
	"github.com/pennywise-app/pennywise/internal/store"
)

// dataDir resolves the ledger directory from config, creating it on first
// use.
func dataDir() (string, error) {
	dir := viper.GetString("data.dir")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".local", "share", "pennywise")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}

// loadLedger reads the ledger from the configured directory. One command is
// one load→mutate→persist cycle; nothing is cached between invocations.
func loadLedger() (ledger.Ledger, string, error) {
	dir, err := dataDir()
	if err != nil {
		return ledger.Ledger{}, "", err
	}
	l, err := store.Load(dir)
	return l, dir, err
}

// accountPrecision resolves the display and parse precision for an account.
func accountPrecision(a model.Account) int {
	return codec.Precision(a.Currency)
}

// parseAmount converts user decimal input like "12.34" into minor units for
// the account. Unlike file loading, typed input is rejected when it does not
// parse; a typo must not turn into a silent zero.
func parseAmount(s string, a model.Account) (int64, error) {
	minor, err := codec.ParseMoneyStrict(s, accountPrecision(a))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ledger.ErrValidation, err)
	}
	return minor, nil
}

// formatAmount renders minor units as a decimal string for the account.
func formatAmount(minor int64, a model.Account) string {
	return codec.FormatMoney(minor, accountPrecision(a))
}

// stringFlag returns a pointer to the flag value only if the user set it,
// matching the patch semantics of the ledger update operations.
func stringFlag(changed bool, v string) *string {
	if !changed {
		return nil
	}
	return &v
}
