package ledger

import (
	"fmt"
	"slices"

	"github.com/pennywise-app/pennywise/internal/model"
)

// BalanceStatus is the derived three-state classification of an account. It
// is computed, never stored: the stored facts are the reconciled date and the
// reported balance.
type BalanceStatus string

const (
	// StatusReconciled means the user confirmed the balances match as of the
	// reconciled date.
	StatusReconciled BalanceStatus = "reconciled"
	// StatusBalanced means the reported balance equals the working balance
	// but nothing has been confirmed.
	StatusBalanced BalanceStatus = "balanced"
	// StatusDiscrepancy means the reported and working balances differ.
	StatusDiscrepancy BalanceStatus = "discrepancy"
)

// WorkingBalance sums the amounts of every movement attributed to the
// account.
func (l Ledger) WorkingBalance(accountID string) (int64, error) {
	if _, ok := l.Account(accountID); !ok {
		return 0, fmt.Errorf("%w: account %s", ErrNotFound, accountID)
	}
	var sum int64
	for _, m := range l.Movements {
		if m.AccountID == accountID {
			sum += m.Amount
		}
	}
	return sum, nil
}

// BalanceStatus classifies the account. Any mutation that changes the
// account's movements clears the reconciled date, which collapses
// "reconciled" back to "balanced" or "discrepancy".
func (l Ledger) BalanceStatus(accountID string) (BalanceStatus, error) {
	a, ok := l.Account(accountID)
	if !ok {
		return "", fmt.Errorf("%w: account %s", ErrNotFound, accountID)
	}
	if !a.Reconciled.IsZero() {
		return StatusReconciled, nil
	}
	working, err := l.WorkingBalance(accountID)
	if err != nil {
		return "", err
	}
	if a.Balance == working {
		return StatusBalanced, nil
	}
	return StatusDiscrepancy, nil
}

// Reconcile confirms that the reported balance matches the working balance,
// recording today as the reconciliation date. A nonzero discrepancy fails
// with the amount attached; fix the movements or create a balance adjustment
// first.
func (l Ledger) Reconcile(accountID string, reportedBalance int64) (Ledger, error) {
	i := slices.IndexFunc(l.Accounts, func(a model.Account) bool { return a.ID == accountID })
	if i < 0 {
		return l, fmt.Errorf("%w: account %s", ErrNotFound, accountID)
	}
	working, err := l.WorkingBalance(accountID)
	if err != nil {
		return l, err
	}
	if diff := reportedBalance - working; diff != 0 {
		return l, &DiscrepancyError{AccountID: accountID, Discrepancy: diff}
	}
	out := l
	out.Accounts = slices.Clone(l.Accounts)
	out.Accounts[i].Balance = reportedBalance
	out.Accounts[i].Reconciled = model.Today()
	return out, nil
}

// balanceAdjustmentDescription labels synthesized adjustment movements.
const balanceAdjustmentDescription = "Balance adjustment"

// CreateBalanceAdjustment synthesizes a single movement for exactly the
// current discrepancy, so a following Reconcile with the same reported
// balance succeeds. It fails when the account already balances.
func (l Ledger) CreateBalanceAdjustment(accountID string, reportedBalance int64) (Ledger, model.Movement, error) {
	working, err := l.WorkingBalance(accountID)
	if err != nil {
		return l, model.Movement{}, err
	}
	diff := reportedBalance - working
	if diff == 0 {
		return l, model.Movement{}, fmt.Errorf("%w: account %s already balances, nothing to adjust", ErrConflict, accountID)
	}
	kind := model.MovementIncome
	if diff < 0 {
		kind = model.MovementExpense
	}
	return l.CreateMovement(MovementInput{
		Kind:        kind,
		AccountID:   accountID,
		Date:        model.Today(),
		Description: balanceAdjustmentDescription,
		Amount:      diff,
		Source:      model.SourceReconciliation,
	})
}
