package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennywise-app/pennywise/internal/model"
)

func TestBalanceStatus(t *testing.T) {
	l := newTestLedger(t)
	l, _ = mustCreateMovement(t, l, MovementInput{
		Kind: model.MovementIncome, AccountID: "1", Date: testDate(1), Amount: 5000,
	})

	t.Run("balanced when reported equals working", func(t *testing.T) {
		balance := int64(5000)
		l, _, err := l.UpdateAccount("1", AccountPatch{Balance: &balance})
		require.NoError(t, err)
		status, err := l.BalanceStatus("1")
		require.NoError(t, err)
		assert.Equal(t, StatusBalanced, status)
	})

	t.Run("discrepancy when they differ", func(t *testing.T) {
		status, err := l.BalanceStatus("1")
		require.NoError(t, err)
		assert.Equal(t, StatusDiscrepancy, status)
	})

	t.Run("reconciled wins while the mark is set", func(t *testing.T) {
		marked := reconciled(t, l, "1", testDate(2))
		status, err := marked.BalanceStatus("1")
		require.NoError(t, err)
		assert.Equal(t, StatusReconciled, status)
	})
}

func TestReconcile(t *testing.T) {
	t.Run("succeeds when the reported balance matches", func(t *testing.T) {
		l := newTestLedger(t)
		l, _ = mustCreateMovement(t, l, MovementInput{
			Kind: model.MovementIncome, AccountID: "1", Date: testDate(1), Amount: 5000,
		})
		next, err := l.Reconcile("1", 5000)
		require.NoError(t, err)
		a := accountByID(t, next, "1")
		assert.Equal(t, int64(5000), a.Balance)
		assert.False(t, a.Reconciled.IsZero())
	})

	t.Run("fails with the discrepancy attached", func(t *testing.T) {
		l := newTestLedger(t)
		l, _ = mustCreateMovement(t, l, MovementInput{
			Kind: model.MovementIncome, AccountID: "1", Date: testDate(1), Amount: 5000,
		})
		out, err := l.Reconcile("1", 4000)
		var disc *DiscrepancyError
		require.ErrorAs(t, err, &disc)
		assert.Equal(t, int64(-1000), disc.Discrepancy)
		assert.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, l, out)
	})

	t.Run("unknown account", func(t *testing.T) {
		l := newTestLedger(t)
		_, err := l.Reconcile("99", 0)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCreateBalanceAdjustment(t *testing.T) {
	t.Run("synthesizes exactly the discrepancy", func(t *testing.T) {
		l := newTestLedger(t)
		l, _ = mustCreateMovement(t, l, MovementInput{
			Kind: model.MovementIncome, AccountID: "1", Date: testDate(1), Amount: 5000,
		})

		next, adjustment, err := l.CreateBalanceAdjustment("1", 3000)
		require.NoError(t, err)
		assert.Equal(t, model.MovementExpense, adjustment.Kind)
		assert.Equal(t, int64(-2000), adjustment.Amount)
		assert.Equal(t, model.SourceReconciliation, adjustment.Source)

		// Reconcile with the same reported balance now succeeds.
		next, err = next.Reconcile("1", 3000)
		require.NoError(t, err)
		assert.False(t, accountByID(t, next, "1").Reconciled.IsZero())
	})

	t.Run("positive discrepancy becomes income", func(t *testing.T) {
		l := newTestLedger(t)
		_, adjustment, err := l.CreateBalanceAdjustment("1", 700)
		require.NoError(t, err)
		assert.Equal(t, model.MovementIncome, adjustment.Kind)
		assert.Equal(t, int64(700), adjustment.Amount)
	})

	t.Run("fails when the account already balances", func(t *testing.T) {
		l := newTestLedger(t)
		_, _, err := l.CreateBalanceAdjustment("1", 0)
		assert.ErrorIs(t, err, ErrConflict)
		var disc *DiscrepancyError
		assert.False(t, errors.As(err, &disc))
	})
}

// Walks the full lifecycle: movements, reconcile, category deletion leaving
// the mark alone, and the next movement clearing it again.
func TestReconciliationLifecycle(t *testing.T) {
	l := newTestLedger(t)
	l, expense := mustCreateMovement(t, l, MovementInput{
		Kind: model.MovementExpense, AccountID: "1", Date: testDate(1), CategoryID: "1", Amount: -2000,
	})
	l, _ = mustCreateMovement(t, l, MovementInput{
		Kind: model.MovementIncome, AccountID: "1", Date: testDate(2), Amount: 5000,
	})

	l, err := l.Reconcile("1", 3000)
	require.NoError(t, err)
	account := accountByID(t, l, "1")
	assert.Equal(t, int64(3000), account.Balance)
	assert.False(t, account.Reconciled.IsZero())

	// Deleting the category nullifies the reference but leaves the
	// reconciliation mark: no movement changed accounts.
	l, err = l.DeleteCategory("1")
	require.NoError(t, err)
	got, ok := l.Movement(expense.ID)
	require.True(t, ok)
	assert.Empty(t, got.CategoryID)
	assert.False(t, accountByID(t, l, "1").Reconciled.IsZero())

	// The next movement on the account clears it again.
	l, _ = mustCreateMovement(t, l, MovementInput{
		Kind: model.MovementExpense, AccountID: "1", Date: testDate(3), Amount: -100,
	})
	assert.True(t, accountByID(t, l, "1").Reconciled.IsZero())
	status, err := l.BalanceStatus("1")
	require.NoError(t, err)
	assert.Equal(t, StatusDiscrepancy, status)
}
