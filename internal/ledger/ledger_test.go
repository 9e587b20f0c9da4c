package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pennywise-app/pennywise/internal/model"
)

// newTestLedger builds a ledger with two accounts, one category, and no
// movements.
func newTestLedger(t *testing.T) Ledger {
	t.Helper()
	l := Ledger{}
	var err error
	l, _, err = l.CreateAccount(AccountInput{Name: "Checking", Kind: model.AccountChecking, Currency: "USD"})
	require.NoError(t, err)
	l, _, err = l.CreateAccount(AccountInput{Name: "Savings", Kind: model.AccountSavings, Currency: "USD"})
	require.NoError(t, err)
	l, _, err = l.CreateCategory(CategoryInput{Kind: model.CategoryExpense, Name: "Groceries"})
	require.NoError(t, err)
	return l
}

func testDate(day int) model.Date {
	return model.NewDate(2024, time.June, day)
}

// mustCreateMovement is a shorthand for tests that need prior movements.
func mustCreateMovement(t *testing.T, l Ledger, in MovementInput) (Ledger, model.Movement) {
	t.Helper()
	next, m, err := l.CreateMovement(in)
	require.NoError(t, err)
	return next, m
}

// reconciled marks an account as reconciled as of the given date, bypassing
// the balance check, to set up auto-clear scenarios.
func reconciled(t *testing.T, l Ledger, accountID string, d model.Date) Ledger {
	t.Helper()
	for i := range l.Accounts {
		if l.Accounts[i].ID == accountID {
			l.Accounts[i].Reconciled = d
			return l
		}
	}
	t.Fatalf("no account %s", accountID)
	return l
}

func accountByID(t *testing.T, l Ledger, id string) model.Account {
	t.Helper()
	a, ok := l.Account(id)
	require.True(t, ok, "account %s", id)
	return a
}
