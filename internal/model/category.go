package model

import "github.com/pennywise-app/pennywise/internal/codec"

// CategoryKind indicates whether a category buckets income or expenses.
type CategoryKind string

const (
	// CategoryIncome buckets income movements.
	CategoryIncome CategoryKind = "income"
	// CategoryExpense buckets expense movements.
	CategoryExpense CategoryKind = "expense"
)

// Valid reports whether the kind belongs to the closed category-kind set.
func (k CategoryKind) Valid() bool {
	return k == CategoryIncome || k == CategoryExpense
}

// Category is a budget bucket. Assigned is the budgeted amount in minor
// units; spent and available are derived from movement sums at query time and
// never stored.
type Category struct {
	ID       string
	Name     string
	Group    string
	Kind     CategoryKind
	Assigned int64
	Hidden   bool
}

// CategorySchema drives serialization of categories.
var CategorySchema = codec.Schema{
	Fields: []codec.Field{
		{Name: "id", Type: codec.FieldString},
		{Name: "kind", Type: codec.FieldString},
		{Name: "name", Type: codec.FieldString},
		{Name: "group", Type: codec.FieldString},
		{Name: "assigned", Type: codec.FieldMoney},
		{Name: "hidden", Type: codec.FieldBool},
	},
}

// CategoryFromRecord builds a Category from a decoded record.
func CategoryFromRecord(rec codec.Record) Category {
	return Category{
		ID:       rec.String("id"),
		Kind:     CategoryKind(rec.String("kind")),
		Name:     rec.String("name"),
		Group:    rec.String("group"),
		Assigned: rec.Int("assigned"),
		Hidden:   rec.Bool("hidden"),
	}
}

// Record converts the category to its codec representation.
func (c Category) Record() codec.Record {
	return codec.Record{
		"id":       c.ID,
		"kind":     string(c.Kind),
		"name":     c.Name,
		"group":    c.Group,
		"assigned": c.Assigned,
		"hidden":   c.Hidden,
	}
}
