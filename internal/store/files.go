package store

import (
	"log/slog"
	"path/filepath"

	"github.com/pennywise-app/pennywise/internal/codec"
	"github.com/pennywise-app/pennywise/internal/ledger"
	"github.com/pennywise-app/pennywise/internal/model"
)

// Data file names inside the ledger directory.
const (
	AccountsFile   = "accounts.csv"
	MovementsFile  = "movements.csv"
	CategoriesFile = "categories.csv"
)

// Every money column is stored at the precision of the currency it is
// denominated in: an account's balance in the account's own currency, a
// movement's amount in its owning account's currency. Categories have no
// currency of their own and use the default precision.

func accountRowPrecision(raw map[string]string) int {
	return codec.Precision(raw["currency"])
}

func accountRecPrecision(rec codec.Record) int {
	return codec.Precision(rec.String("currency"))
}

func movementPrecision(currencies map[string]string) func(accountID string) int {
	return func(accountID string) int {
		cur, ok := currencies[accountID]
		if !ok {
			return codec.DefaultPrecision
		}
		return codec.Precision(cur)
	}
}

func categoryPrecision(map[string]string) int { return codec.DefaultPrecision }

func categoryRecPrecision(codec.Record) int { return codec.DefaultPrecision }

// Load reads the three collections from dir. Missing files load as empty
// collections. Movements whose account no longer exists are tolerated with a
// warning rather than aborting: mutation-time validation deals with them, not
// the loader.
func Load(dir string) (ledger.Ledger, error) {
	accountRecs, err := ReadFile(filepath.Join(dir, AccountsFile), model.AccountSchema, accountRowPrecision)
	if err != nil {
		return ledger.Ledger{}, err
	}
	accounts := make([]model.Account, 0, len(accountRecs))
	currencies := make(map[string]string, len(accountRecs))
	for _, rec := range accountRecs {
		a := model.AccountFromRecord(rec)
		accounts = append(accounts, a)
		currencies[a.ID] = a.Currency
	}

	byAccount := movementPrecision(currencies)
	movementRecs, err := ReadFile(filepath.Join(dir, MovementsFile), model.MovementSchema, func(raw map[string]string) int {
		return byAccount(raw["accountId"])
	})
	if err != nil {
		return ledger.Ledger{}, err
	}
	movements := make([]model.Movement, 0, len(movementRecs))
	dangling := 0
	for _, rec := range movementRecs {
		m := model.MovementFromRecord(rec)
		if _, ok := currencies[m.AccountID]; !ok {
			dangling++
		}
		movements = append(movements, m)
	}
	if dangling > 0 {
		slog.Warn("loaded movements referencing missing accounts",
			"dir", dir,
			"count", dangling)
	}

	categoryRecs, err := ReadFile(filepath.Join(dir, CategoriesFile), model.CategorySchema, categoryPrecision)
	if err != nil {
		return ledger.Ledger{}, err
	}
	categories := make([]model.Category, 0, len(categoryRecs))
	for _, rec := range categoryRecs {
		categories = append(categories, model.CategoryFromRecord(rec))
	}

	return ledger.Ledger{Accounts: accounts, Movements: movements, Categories: categories}, nil
}

// Persist atomically rewrites the three collection files in dir.
func Persist(l ledger.Ledger, dir string) error {
	if err := PersistAccounts(l, dir); err != nil {
		return err
	}
	currencies := accountCurrencies(l)
	byAccount := movementPrecision(currencies)
	movementRecs := make([]codec.Record, len(l.Movements))
	for i, m := range l.Movements {
		movementRecs[i] = m.Record()
	}
	err := WriteFile(filepath.Join(dir, MovementsFile), model.MovementSchema, movementRecs, func(rec codec.Record) int {
		return byAccount(rec.String("accountId"))
	})
	if err != nil {
		return err
	}

	categoryRecs := make([]codec.Record, len(l.Categories))
	for i, c := range l.Categories {
		categoryRecs[i] = c.Record()
	}
	return WriteFile(filepath.Join(dir, CategoriesFile), model.CategorySchema, categoryRecs, categoryRecPrecision)
}

// PersistAccounts atomically rewrites only the accounts file.
func PersistAccounts(l ledger.Ledger, dir string) error {
	recs := make([]codec.Record, len(l.Accounts))
	for i, a := range l.Accounts {
		recs[i] = a.Record()
	}
	return WriteFile(filepath.Join(dir, AccountsFile), model.AccountSchema, recs, accountRecPrecision)
}

// AppendMovements persists pure insertions without rewriting the movements
// file. The accounts file is still rewritten because creating movements
// clears reconciliation marks.
func AppendMovements(l ledger.Ledger, dir string, added []model.Movement) error {
	if err := PersistAccounts(l, dir); err != nil {
		return err
	}
	byAccount := movementPrecision(accountCurrencies(l))
	recs := make([]codec.Record, len(added))
	for i, m := range added {
		recs[i] = m.Record()
	}
	return AppendRecords(filepath.Join(dir, MovementsFile), model.MovementSchema, recs, func(rec codec.Record) int {
		return byAccount(rec.String("accountId"))
	})
}

func accountCurrencies(l ledger.Ledger) map[string]string {
	currencies := make(map[string]string, len(l.Accounts))
	for _, a := range l.Accounts {
		currencies[a.ID] = a.Currency
	}
	return currencies
}
