package model

import (
	"time"

	"github.com/pennywise-app/pennywise/internal/codec"
)

// AccountKind classifies what sort of account holds the money.
type AccountKind string

const (
	// AccountCash is physical cash on hand.
	AccountCash AccountKind = "cash"
	// AccountChecking is a checking account.
	AccountChecking AccountKind = "checking"
	// AccountCreditCard is a revolving credit card.
	AccountCreditCard AccountKind = "credit_card"
	// AccountLoan is a loan or mortgage.
	AccountLoan AccountKind = "loan"
	// AccountSavings is a savings account.
	AccountSavings AccountKind = "savings"
	// AccountAsset is a non-cash asset such as property.
	AccountAsset AccountKind = "asset"
	// AccountCrypto is a cryptocurrency wallet.
	AccountCrypto AccountKind = "crypto"
)

// Valid reports whether the kind belongs to the closed account-kind set.
func (k AccountKind) Valid() bool {
	switch k {
	case AccountCash, AccountChecking, AccountCreditCard, AccountLoan,
		AccountSavings, AccountAsset, AccountCrypto:
		return true
	}
	return false
}

// Account is one place money lives. Balance and every movement amount on the
// account are integer minor units in the account's currency.
type Account struct {
	CreatedAt   time.Time
	ID          string
	Name        string
	Currency    string
	Institution string
	Kind        AccountKind
	Reconciled  Date // date of the last successful reconciliation; zero when none
	Balance     int64
	Hidden      bool
}

// AccountSchema drives serialization of accounts.
var AccountSchema = codec.Schema{
	Fields: []codec.Field{
		{Name: "id", Type: codec.FieldString},
		{Name: "name", Type: codec.FieldString},
		{Name: "kind", Type: codec.FieldString},
		{Name: "currency", Type: codec.FieldString},
		{Name: "institution", Type: codec.FieldString},
		{Name: "balance", Type: codec.FieldMoney},
		{Name: "hidden", Type: codec.FieldBool},
		{Name: "reconciled", Type: codec.FieldString},
		{Name: "createdAt", Type: codec.FieldString},
	},
}

// AccountFromRecord builds an Account from a decoded record. Malformed dates
// and timestamps degrade to their zero values.
func AccountFromRecord(rec codec.Record) Account {
	reconciled, _ := ParseDate(rec.String("reconciled"))
	createdAt, _ := time.Parse(time.RFC3339, rec.String("createdAt"))
	return Account{
		ID:          rec.String("id"),
		Name:        rec.String("name"),
		Kind:        AccountKind(rec.String("kind")),
		Currency:    rec.String("currency"),
		Institution: rec.String("institution"),
		Balance:     rec.Int("balance"),
		Hidden:      rec.Bool("hidden"),
		Reconciled:  reconciled,
		CreatedAt:   createdAt,
	}
}

// Record converts the account to its codec representation.
func (a Account) Record() codec.Record {
	createdAt := ""
	if !a.CreatedAt.IsZero() {
		createdAt = a.CreatedAt.Format(time.RFC3339)
	}
	return codec.Record{
		"id":          a.ID,
		"name":        a.Name,
		"kind":        string(a.Kind),
		"currency":    a.Currency,
		"institution": a.Institution,
		"balance":     a.Balance,
		"hidden":      a.Hidden,
		"reconciled":  a.Reconciled.String(),
		"createdAt":   createdAt,
	}
}
