// Package ledger owns the in-memory aggregate of accounts, movements, and
// categories plus every mutation against it. Operations never modify their
// receiver: each returns a new aggregate in which only the touched
// collections were reallocated, so callers can hold on to a snapshot and
// apply the result only after it persisted.
package ledger

import (
	"slices"
	"strconv"

	"github.com/pennywise-app/pennywise/internal/model"
)

// Ledger is the aggregate of the three record collections.
type Ledger struct {
	Accounts   []model.Account
	Movements  []model.Movement
	Categories []model.Category
}

// Account returns the account with the given id.
func (l Ledger) Account(id string) (model.Account, bool) {
	for _, a := range l.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return model.Account{}, false
}

// Movement returns the movement with the given id.
func (l Ledger) Movement(id string) (model.Movement, bool) {
	for _, m := range l.Movements {
		if m.ID == id {
			return m, true
		}
	}
	return model.Movement{}, false
}

// Category returns the category with the given id.
func (l Ledger) Category(id string) (model.Category, bool) {
	for _, c := range l.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// nextID returns the next record id for a collection: one past the largest
// numeric id present, starting at 1. Non-numeric ids (hand-edited files) are
// ignored.
func nextID[T any](items []T, id func(T) string) string {
	return strconv.FormatInt(maxNumericID(items, id)+1, 10)
}

func maxNumericID[T any](items []T, id func(T) string) int64 {
	var max int64
	for _, it := range items {
		if n, err := strconv.ParseInt(id(it), 10, 64); err == nil && n > max {
			max = n
		}
	}
	return max
}

// clearReconciled returns a copy of accounts with the reconciliation mark
// removed from the named accounts. Any mutation that changes which movements
// an account owns must go through here.
func clearReconciled(accounts []model.Account, ids ...string) []model.Account {
	out := slices.Clone(accounts)
	for i := range out {
		if slices.Contains(ids, out[i].ID) {
			out[i].Reconciled = model.Date{}
		}
	}
	return out
}
