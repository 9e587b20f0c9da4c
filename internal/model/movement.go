package model

import (
	"fmt"
	"time"

	"github.com/pennywise-app/pennywise/internal/codec"
)

// MovementKind classifies a money movement.
type MovementKind string

const (
	// MovementIncome is money flowing into an account from outside.
	MovementIncome MovementKind = "income"
	// MovementExpense is money flowing out of an account.
	MovementExpense MovementKind = "expense"
	// MovementTransfer is one side of a paired movement between two accounts.
	MovementTransfer MovementKind = "transfer"
)

// Valid reports whether the kind belongs to the closed movement-kind set.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementIncome, MovementExpense, MovementTransfer:
		return true
	}
	return false
}

// Movement source tags.
const (
	// SourceManual marks movements entered by hand.
	SourceManual = "manual"
	// SourceImport marks movements created by bulk import.
	SourceImport = "import"
	// SourceReconciliation marks synthesized balance adjustments.
	SourceReconciliation = "reconciliation"
)

// Movement is a single money movement on an account. Amount is signed integer
// minor units in the owning account's currency; negative is an outflow. An
// empty CategoryID means uncategorized, which is an ordinary state rather
// than an error. TransferPairID is empty except on transfer movements, where
// it names the movement on the other account and the reference is mutual.
type Movement struct {
	CreatedAt      time.Time
	ID             string
	AccountID      string
	CategoryID     string
	Description    string
	Payee          string
	TransferPairID string
	Notes          string
	Source         string
	Kind           MovementKind
	Date           Date
	Amount         int64
}

// DedupKey identifies a movement for import deduplication.
func (m Movement) DedupKey() string {
	return fmt.Sprintf("%s|%s|%d|%s", m.Date, m.AccountID, m.Amount, m.Description)
}

// MovementSchema drives serialization of movements.
var MovementSchema = codec.Schema{
	Fields: []codec.Field{
		{Name: "id", Type: codec.FieldString},
		{Name: "kind", Type: codec.FieldString},
		{Name: "accountId", Type: codec.FieldString},
		{Name: "date", Type: codec.FieldString},
		{Name: "categoryId", Type: codec.FieldString},
		{Name: "description", Type: codec.FieldString},
		{Name: "payee", Type: codec.FieldString},
		{Name: "transferPairId", Type: codec.FieldString},
		{Name: "amount", Type: codec.FieldMoney},
		{Name: "notes", Type: codec.FieldString},
		{Name: "source", Type: codec.FieldString},
		{Name: "createdAt", Type: codec.FieldString},
	},
}

// MovementFromRecord builds a Movement from a decoded record.
func MovementFromRecord(rec codec.Record) Movement {
	date, _ := ParseDate(rec.String("date"))
	createdAt, _ := time.Parse(time.RFC3339, rec.String("createdAt"))
	return Movement{
		ID:             rec.String("id"),
		Kind:           MovementKind(rec.String("kind")),
		AccountID:      rec.String("accountId"),
		Date:           date,
		CategoryID:     rec.String("categoryId"),
		Description:    rec.String("description"),
		Payee:          rec.String("payee"),
		TransferPairID: rec.String("transferPairId"),
		Amount:         rec.Int("amount"),
		Notes:          rec.String("notes"),
		Source:         rec.String("source"),
		CreatedAt:      createdAt,
	}
}

// Record converts the movement to its codec representation.
func (m Movement) Record() codec.Record {
	createdAt := ""
	if !m.CreatedAt.IsZero() {
		createdAt = m.CreatedAt.Format(time.RFC3339)
	}
	return codec.Record{
		"id":             m.ID,
		"kind":           string(m.Kind),
		"accountId":      m.AccountID,
		"date":           m.Date.String(),
		"categoryId":     m.CategoryID,
		"description":    m.Description,
		"payee":          m.Payee,
		"transferPairId": m.TransferPairID,
		"amount":         m.Amount,
		"notes":          m.Notes,
		"source":         m.Source,
		"createdAt":      createdAt,
	}
}
