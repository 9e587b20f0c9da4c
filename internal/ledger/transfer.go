package ledger

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/pennywise-app/pennywise/internal/model"
)

// TransferInput carries the caller-supplied fields for a new transfer pair.
// The amount's absolute value is used; the outflow side is always negative
// and the inflow side positive.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        int64
	Date          model.Date
	Description   string
	Notes         string
}

// CreateTransfer appends two mutually paired movements: an outflow on the
// source account and an inflow on the destination. Both accounts lose their
// reconciled mark.
func (l Ledger) CreateTransfer(in TransferInput) (Ledger, model.Movement, model.Movement, error) {
	var none model.Movement
	if in.FromAccountID == in.ToAccountID {
		return l, none, none, fmt.Errorf("%w: transfer source and destination are the same account", ErrValidation)
	}
	if in.Amount == 0 {
		return l, none, none, fmt.Errorf("%w: transfer amount cannot be zero", ErrValidation)
	}
	if in.Date.IsZero() {
		return l, none, none, fmt.Errorf("%w: transfer date is required", ErrValidation)
	}
	from, ok := l.Account(in.FromAccountID)
	if !ok {
		return l, none, none, fmt.Errorf("%w: account %s", ErrNotFound, in.FromAccountID)
	}
	to, ok := l.Account(in.ToAccountID)
	if !ok {
		return l, none, none, fmt.Errorf("%w: account %s", ErrNotFound, in.ToAccountID)
	}

	amount := in.Amount
	if amount < 0 {
		amount = -amount
	}
	base := maxNumericID(l.Movements, func(m model.Movement) string { return m.ID })
	outID := strconv.FormatInt(base+1, 10)
	inID := strconv.FormatInt(base+2, 10)
	now := time.Now()

	outflow := model.Movement{
		ID:             outID,
		Kind:           model.MovementTransfer,
		AccountID:      in.FromAccountID,
		Date:           in.Date,
		Description:    in.Description,
		TransferPairID: inID,
		Amount:         -amount,
		Notes:          in.Notes,
		Source:         model.SourceManual,
		CreatedAt:      now,
	}
	inflow := outflow
	inflow.ID = inID
	inflow.AccountID = in.ToAccountID
	inflow.TransferPairID = outID
	inflow.Amount = amount
	if in.Description == "" {
		outflow.Description = "Transfer to " + to.Name
		inflow.Description = "Transfer from " + from.Name
	}

	out := l
	out.Movements = append(slices.Clone(l.Movements), outflow, inflow)
	out.Accounts = clearReconciled(l.Accounts, in.FromAccountID, in.ToAccountID)
	return out, outflow, inflow, nil
}

// pairOf resolves the other side of a transfer, distinguishing "movement is
// not a transfer" (validation), "pair missing" (not found), and "pair exists
// but is not a transfer" (corruption: the file needs repair).
func (l Ledger) pairOf(m model.Movement) (model.Movement, error) {
	if m.Kind != model.MovementTransfer || m.TransferPairID == "" {
		return model.Movement{}, fmt.Errorf("%w: movement %s is not a transfer", ErrValidation, m.ID)
	}
	pair, ok := l.Movement(m.TransferPairID)
	if !ok {
		return model.Movement{}, fmt.Errorf("%w: transfer pair %s of movement %s", ErrNotFound, m.TransferPairID, m.ID)
	}
	if pair.Kind != model.MovementTransfer {
		return model.Movement{}, fmt.Errorf(
			"%w: movement %s names %s as its transfer pair, but %s is a %s", ErrCorrupted, m.ID, pair.ID, pair.ID, pair.Kind)
	}
	return pair, nil
}

// SyncTransferAmount sets a transfer side to newAmount and its pair to the
// negation, keeping the two sides opposite. Both owning accounts lose their
// reconciled mark.
func (l Ledger) SyncTransferAmount(movementID string, newAmount int64) (Ledger, error) {
	m, ok := l.Movement(movementID)
	if !ok {
		return l, fmt.Errorf("%w: movement %s", ErrNotFound, movementID)
	}
	pair, err := l.pairOf(m)
	if err != nil {
		return l, err
	}
	out := l
	out.Movements = slices.Clone(l.Movements)
	for i := range out.Movements {
		switch out.Movements[i].ID {
		case m.ID:
			out.Movements[i].Amount = newAmount
		case pair.ID:
			out.Movements[i].Amount = -newAmount
		}
	}
	out.Accounts = clearReconciled(l.Accounts, m.AccountID, pair.AccountID)
	return out, nil
}

// UnlinkTransfer converts one side of a transfer into a plain income or
// expense movement and deletes its former pair. This is the only sanctioned
// way to turn a transfer into a regular movement; UpdateMovement refuses to
// change the kind of a transfer member.
func (l Ledger) UnlinkTransfer(movementID string, newKind model.MovementKind) (Ledger, model.Movement, error) {
	if newKind != model.MovementIncome && newKind != model.MovementExpense {
		return l, model.Movement{}, fmt.Errorf("%w: a transfer unlinks to income or expense, not %q", ErrValidation, newKind)
	}
	m, ok := l.Movement(movementID)
	if !ok {
		return l, model.Movement{}, fmt.Errorf("%w: movement %s", ErrNotFound, movementID)
	}
	pair, err := l.pairOf(m)
	if err != nil {
		return l, model.Movement{}, err
	}
	m.Kind = newKind
	m.TransferPairID = ""
	out := l
	out.Movements = slices.Clone(l.Movements)
	for i := range out.Movements {
		if out.Movements[i].ID == m.ID {
			out.Movements[i] = m
		}
	}
	out.Movements = slices.DeleteFunc(out.Movements, func(mv model.Movement) bool {
		return mv.ID == pair.ID
	})
	out.Accounts = clearReconciled(l.Accounts, m.AccountID, pair.AccountID)
	return out, m, nil
}
