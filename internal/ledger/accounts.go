package ledger

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pennywise-app/pennywise/internal/model"
)

// AccountInput carries the caller-supplied fields for a new account.
type AccountInput struct {
	Name        string
	Kind        model.AccountKind
	Currency    string
	Institution string
	Balance     int64
}

// AccountPatch describes a partial account update. Nil fields keep their
// current value.
type AccountPatch struct {
	Name        *string
	Kind        *model.AccountKind
	Currency    *string
	Institution *string
	Balance     *int64
	Hidden      *bool
}

func validateAccount(a model.Account) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: account name is required", ErrValidation)
	}
	if !a.Kind.Valid() {
		return fmt.Errorf("%w: unknown account kind %q", ErrValidation, a.Kind)
	}
	if strings.TrimSpace(a.Currency) == "" {
		return fmt.Errorf("%w: account currency is required", ErrValidation)
	}
	return nil
}

// CreateAccount validates the input and appends a new account with the next
// free id.
func (l Ledger) CreateAccount(in AccountInput) (Ledger, model.Account, error) {
	a := model.Account{
		ID:          nextID(l.Accounts, func(a model.Account) string { return a.ID }),
		Name:        in.Name,
		Kind:        in.Kind,
		Currency:    strings.ToUpper(strings.TrimSpace(in.Currency)),
		Institution: in.Institution,
		Balance:     in.Balance,
		CreatedAt:   time.Now(),
	}
	if err := validateAccount(a); err != nil {
		return l, model.Account{}, err
	}
	out := l
	out.Accounts = append(slices.Clone(l.Accounts), a)
	return out, a, nil
}

// UpdateAccount overlays the patch on the existing account and re-validates
// the merged record.
func (l Ledger) UpdateAccount(id string, patch AccountPatch) (Ledger, model.Account, error) {
	i := slices.IndexFunc(l.Accounts, func(a model.Account) bool { return a.ID == id })
	if i < 0 {
		return l, model.Account{}, fmt.Errorf("%w: account %s", ErrNotFound, id)
	}
	a := l.Accounts[i]
	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.Kind != nil {
		a.Kind = *patch.Kind
	}
	if patch.Currency != nil {
		a.Currency = strings.ToUpper(strings.TrimSpace(*patch.Currency))
	}
	if patch.Institution != nil {
		a.Institution = *patch.Institution
	}
	if patch.Balance != nil {
		a.Balance = *patch.Balance
	}
	if patch.Hidden != nil {
		a.Hidden = *patch.Hidden
	}
	if err := validateAccount(a); err != nil {
		return l, model.Account{}, err
	}
	out := l
	out.Accounts = slices.Clone(l.Accounts)
	out.Accounts[i] = a
	return out, a, nil
}

// HideAccount soft-deletes an account. Reversible via UpdateAccount.
func (l Ledger) HideAccount(id string) (Ledger, error) {
	hidden := true
	out, _, err := l.UpdateAccount(id, AccountPatch{Hidden: &hidden})
	return out, err
}

// DeleteAccount removes an account permanently. It is blocked while any
// movement still references the account; hide it instead, or delete the
// movements first.
func (l Ledger) DeleteAccount(id string) (Ledger, error) {
	i := slices.IndexFunc(l.Accounts, func(a model.Account) bool { return a.ID == id })
	if i < 0 {
		return l, fmt.Errorf("%w: account %s", ErrNotFound, id)
	}
	refs := 0
	for _, m := range l.Movements {
		if m.AccountID == id {
			refs++
		}
	}
	if refs > 0 {
		return l, fmt.Errorf("%w: account %s still has %d movements", ErrConflict, id, refs)
	}
	out := l
	out.Accounts = slices.Delete(slices.Clone(l.Accounts), i, i+1)
	return out, nil
}
