package ledger

import (
	"fmt"
	"slices"
	"time"

	"github.com/pennywise-app/pennywise/internal/model"
)

// MovementInput carries the caller-supplied fields for a new movement.
type MovementInput struct {
	Kind        model.MovementKind
	AccountID   string
	Date        model.Date
	CategoryID  string
	Description string
	Payee       string
	Amount      int64
	Notes       string
	Source      string
}

// MovementPatch describes a partial movement update. Nil fields keep their
// current value.
type MovementPatch struct {
	Kind        *model.MovementKind
	AccountID   *string
	Date        *model.Date
	CategoryID  *string
	Description *string
	Payee       *string
	Amount      *int64
	Notes       *string
}

func (l Ledger) validateMovement(m model.Movement) error {
	if !m.Kind.Valid() {
		return fmt.Errorf("%w: unknown movement kind %q", ErrValidation, m.Kind)
	}
	if m.Kind == model.MovementTransfer && m.TransferPairID == "" {
		return fmt.Errorf("%w: transfers are created through the transfer operations", ErrValidation)
	}
	if m.Date.IsZero() {
		return fmt.Errorf("%w: movement date is required", ErrValidation)
	}
	if _, ok := l.Account(m.AccountID); !ok {
		return fmt.Errorf("%w: account %s", ErrNotFound, m.AccountID)
	}
	if m.CategoryID != "" {
		if _, ok := l.Category(m.CategoryID); !ok {
			return fmt.Errorf("%w: category %s", ErrNotFound, m.CategoryID)
		}
	}
	return nil
}

// CreateMovement validates the input and appends a new movement. The owning
// account loses its reconciled mark. Transfers cannot be created here; use
// CreateTransfer so both sides stay in sync.
func (l Ledger) CreateMovement(in MovementInput) (Ledger, model.Movement, error) {
	source := in.Source
	if source == "" {
		source = model.SourceManual
	}
	m := model.Movement{
		ID:          nextID(l.Movements, func(m model.Movement) string { return m.ID }),
		Kind:        in.Kind,
		AccountID:   in.AccountID,
		Date:        in.Date,
		CategoryID:  in.CategoryID,
		Description: in.Description,
		Payee:       in.Payee,
		Amount:      in.Amount,
		Notes:       in.Notes,
		Source:      source,
		CreatedAt:   time.Now(),
	}
	if m.Kind == model.MovementTransfer {
		return l, model.Movement{}, fmt.Errorf("%w: transfers are created through the transfer operations", ErrValidation)
	}
	if err := l.validateMovement(m); err != nil {
		return l, model.Movement{}, err
	}
	out := l
	out.Movements = append(slices.Clone(l.Movements), m)
	out.Accounts = clearReconciled(l.Accounts, m.AccountID)
	return out, m, nil
}

// UpdateMovement overlays the patch on the existing movement and re-validates
// the merged record. Members of a transfer pair reject changes to kind,
// amount, and account: editing one side in place would desynchronize the
// pair, so those go through SyncTransferAmount and UnlinkTransfer instead.
// Every account whose movement set changed loses its reconciled mark.
func (l Ledger) UpdateMovement(id string, patch MovementPatch) (Ledger, model.Movement, error) {
	i := slices.IndexFunc(l.Movements, func(m model.Movement) bool { return m.ID == id })
	if i < 0 {
		return l, model.Movement{}, fmt.Errorf("%w: movement %s", ErrNotFound, id)
	}
	m := l.Movements[i]
	if m.TransferPairID != "" && (patch.Kind != nil || patch.Amount != nil || patch.AccountID != nil) {
		return l, model.Movement{}, fmt.Errorf(
			"%w: movement %s belongs to a transfer; use the transfer operations to change kind, amount, or account", ErrConflict, id)
	}
	previousAccount := m.AccountID
	if patch.Kind != nil {
		m.Kind = *patch.Kind
	}
	if patch.AccountID != nil {
		m.AccountID = *patch.AccountID
	}
	if patch.Date != nil {
		m.Date = *patch.Date
	}
	if patch.CategoryID != nil {
		m.CategoryID = *patch.CategoryID
	}
	if patch.Description != nil {
		m.Description = *patch.Description
	}
	if patch.Payee != nil {
		m.Payee = *patch.Payee
	}
	if patch.Amount != nil {
		m.Amount = *patch.Amount
	}
	if patch.Notes != nil {
		m.Notes = *patch.Notes
	}
	if err := l.validateMovement(m); err != nil {
		return l, model.Movement{}, err
	}
	out := l
	out.Movements = slices.Clone(l.Movements)
	out.Movements[i] = m
	out.Accounts = clearReconciled(l.Accounts, previousAccount, m.AccountID)
	return out, m, nil
}

// DeleteMovement removes a movement permanently. Deleting one side of a
// transfer removes the paired movement in the same operation. Every account
// that lost a movement also loses its reconciled mark.
func (l Ledger) DeleteMovement(id string) (Ledger, error) {
	m, ok := l.Movement(id)
	if !ok {
		return l, fmt.Errorf("%w: movement %s", ErrNotFound, id)
	}
	doomed := map[string]bool{id: true}
	touched := []string{m.AccountID}
	if m.TransferPairID != "" {
		if pair, ok := l.Movement(m.TransferPairID); ok {
			doomed[pair.ID] = true
			touched = append(touched, pair.AccountID)
		}
	}
	out := l
	out.Movements = slices.DeleteFunc(slices.Clone(l.Movements), func(m model.Movement) bool {
		return doomed[m.ID]
	})
	out.Accounts = clearReconciled(l.Accounts, touched...)
	return out, nil
}
