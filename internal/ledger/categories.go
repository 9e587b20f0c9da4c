package ledger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pennywise-app/pennywise/internal/model"
)

// CategoryInput carries the caller-supplied fields for a new category.
type CategoryInput struct {
	Kind     model.CategoryKind
	Name     string
	Group    string
	Assigned int64
}

// CategoryPatch describes a partial category update. Nil fields keep their
// current value.
type CategoryPatch struct {
	Kind     *model.CategoryKind
	Name     *string
	Group    *string
	Assigned *int64
	Hidden   *bool
}

func validateCategory(c model.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}
	if !c.Kind.Valid() {
		return fmt.Errorf("%w: unknown category kind %q", ErrValidation, c.Kind)
	}
	return nil
}

// CreateCategory validates the input and appends a new category.
func (l Ledger) CreateCategory(in CategoryInput) (Ledger, model.Category, error) {
	c := model.Category{
		ID:       nextID(l.Categories, func(c model.Category) string { return c.ID }),
		Kind:     in.Kind,
		Name:     in.Name,
		Group:    in.Group,
		Assigned: in.Assigned,
	}
	if err := validateCategory(c); err != nil {
		return l, model.Category{}, err
	}
	out := l
	out.Categories = append(slices.Clone(l.Categories), c)
	return out, c, nil
}

// UpdateCategory overlays the patch on the existing category and re-validates
// the merged record.
func (l Ledger) UpdateCategory(id string, patch CategoryPatch) (Ledger, model.Category, error) {
	i := slices.IndexFunc(l.Categories, func(c model.Category) bool { return c.ID == id })
	if i < 0 {
		return l, model.Category{}, fmt.Errorf("%w: category %s", ErrNotFound, id)
	}
	c := l.Categories[i]
	if patch.Kind != nil {
		c.Kind = *patch.Kind
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Group != nil {
		c.Group = *patch.Group
	}
	if patch.Assigned != nil {
		c.Assigned = *patch.Assigned
	}
	if patch.Hidden != nil {
		c.Hidden = *patch.Hidden
	}
	if err := validateCategory(c); err != nil {
		return l, model.Category{}, err
	}
	out := l
	out.Categories = slices.Clone(l.Categories)
	out.Categories[i] = c
	return out, c, nil
}

// HideCategory soft-deletes a category. Reversible via UpdateCategory.
func (l Ledger) HideCategory(id string) (Ledger, error) {
	hidden := true
	out, _, err := l.UpdateCategory(id, CategoryPatch{Hidden: &hidden})
	return out, err
}

// DeleteCategory removes a category permanently. Every movement that
// referenced it becomes uncategorized in the same operation, so no dangling
// reference survives. Category deletion does not change which movements an
// account owns, so reconciliation marks are untouched.
func (l Ledger) DeleteCategory(id string) (Ledger, error) {
	i := slices.IndexFunc(l.Categories, func(c model.Category) bool { return c.ID == id })
	if i < 0 {
		return l, fmt.Errorf("%w: category %s", ErrNotFound, id)
	}
	out := l
	out.Categories = slices.Delete(slices.Clone(l.Categories), i, i+1)
	cloned := false
	for j, m := range l.Movements {
		if m.CategoryID != id {
			continue
		}
		if !cloned {
			out.Movements = slices.Clone(l.Movements)
			cloned = true
		}
		out.Movements[j].CategoryID = ""
	}
	return out, nil
}

// CategoryActivity sums movement amounts attributed to the category within
// the date window. Zero bounds leave that side of the window open.
func (l Ledger) CategoryActivity(categoryID string, from, to model.Date) int64 {
	var sum int64
	for _, m := range l.Movements {
		if m.CategoryID != categoryID {
			continue
		}
		if !from.IsZero() && m.Date.Before(from) {
			continue
		}
		if !to.IsZero() && m.Date.After(to) {
			continue
		}
		sum += m.Amount
	}
	return sum
}

// CategoryAvailable is the assigned budget plus the (typically negative)
// activity in the window.
func (l Ledger) CategoryAvailable(categoryID string, from, to model.Date) (int64, error) {
	c, ok := l.Category(categoryID)
	if !ok {
		return 0, fmt.Errorf("%w: category %s", ErrNotFound, categoryID)
	}
	return c.Assigned + l.CategoryActivity(categoryID, from, to), nil
}
