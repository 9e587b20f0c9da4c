package ledger

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/pennywise-app/pennywise/internal/model"
)

// ImportOutcome classifies what happened to one import candidate.
type ImportOutcome string

const (
	// OutcomeImported means the candidate became a new movement.
	OutcomeImported ImportOutcome = "imported"
	// OutcomeDuplicate means an equivalent movement already exists on the
	// account.
	OutcomeDuplicate ImportOutcome = "duplicate"
	// OutcomeInvalid means the candidate failed basic validation and was
	// skipped rather than aborting the batch.
	OutcomeInvalid ImportOutcome = "invalid"
	// OutcomeReconciled means the candidate predates the account's last
	// reconciliation; those movements are presumed already verified and
	// re-importing them would be destructive.
	OutcomeReconciled ImportOutcome = "reconciled"
)

// ImportResult reports the per-candidate outcomes of one bulk import.
// Outcomes is index-aligned with the candidate slice. Added holds the
// movements that were actually created, in input order, so callers can use
// the append-only persistence fast path.
type ImportResult struct {
	Outcomes   []ImportOutcome
	Added      []model.Movement
	Imported   int
	Duplicates int
	Invalid    int
	Reconciled int
}

// ImportMovements merges a batch of candidate movements into the target
// account. A candidate is skipped when an equivalent movement already exists
// (same date, account, amount, and description), when it predates the
// account's reconciled date, or when it fails validation; skipping never
// aborts the batch. Candidate categories that do not resolve degrade to
// uncategorized. A batch that imports nothing returns the receiver unchanged
// so callers can cheaply detect a no-op.
func (l Ledger) ImportMovements(accountID string, candidates []model.Movement) (Ledger, ImportResult, error) {
	account, ok := l.Account(accountID)
	if !ok {
		return l, ImportResult{}, fmt.Errorf("%w: account %s", ErrNotFound, accountID)
	}

	seen := make(map[string]bool)
	for _, m := range l.Movements {
		if m.AccountID == accountID {
			seen[m.DedupKey()] = true
		}
	}

	res := ImportResult{Outcomes: make([]ImportOutcome, len(candidates))}
	id := maxNumericID(l.Movements, func(m model.Movement) string { return m.ID })
	now := time.Now()
	for i, c := range candidates {
		c.AccountID = accountID
		c.TransferPairID = ""
		if (c.Kind != model.MovementIncome && c.Kind != model.MovementExpense) || c.Date.IsZero() {
			res.Outcomes[i] = OutcomeInvalid
			res.Invalid++
			continue
		}
		if !account.Reconciled.IsZero() && c.Date.Before(account.Reconciled) {
			res.Outcomes[i] = OutcomeReconciled
			res.Reconciled++
			continue
		}
		if seen[c.DedupKey()] {
			res.Outcomes[i] = OutcomeDuplicate
			res.Duplicates++
			continue
		}
		if c.CategoryID != "" {
			if _, ok := l.Category(c.CategoryID); !ok {
				c.CategoryID = ""
			}
		}
		if c.Source == "" {
			c.Source = model.SourceImport
		}
		id++
		c.ID = strconv.FormatInt(id, 10)
		c.CreatedAt = now
		seen[c.DedupKey()] = true
		res.Added = append(res.Added, c)
		res.Outcomes[i] = OutcomeImported
		res.Imported++
	}

	if res.Imported == 0 {
		return l, res, nil
	}
	out := l
	out.Movements = append(slices.Clone(l.Movements), res.Added...)
	out.Accounts = clearReconciled(l.Accounts, accountID)
	return out, res, nil
}
