// Package codec converts between the flat string-keyed rows stored on disk
// and typed in-memory records. A Schema is the single source of truth for an
// entity's column order, per-field defaults, and which columns carry money
// values, so column-presence migration lives in one place instead of in
// per-entity serializers.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldType enumerates the value kinds a schema field can hold.
type FieldType int

const (
	// FieldString holds free text; default "".
	FieldString FieldType = iota
	// FieldNumber holds a plain integer; default 0.
	FieldNumber
	// FieldBool holds a boolean; default false.
	FieldBool
	// FieldMoney holds integer minor units scaled by a currency precision;
	// default 0.
	FieldMoney
)

// Field is one named, typed column of a schema.
type Field struct {
	Name string
	Type FieldType
}

// Schema is the ordered field list for one entity type.
type Schema struct {
	Fields []Field
}

// Header returns the column names in schema order.
func (s Schema) Header() []string {
	cols := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		cols[i] = f.Name
	}
	return cols
}

// Record is a decoded row. Values are string, int64 (number and money), or
// bool depending on the field type.
type Record map[string]any

// String returns the named field as a string.
func (r Record) String(name string) string {
	v, _ := r[name].(string)
	return v
}

// Int returns the named field as an int64. Money fields are minor units.
func (r Record) Int(name string) int64 {
	v, _ := r[name].(int64)
	return v
}

// Bool returns the named field as a bool.
func (r Record) Bool(name string) bool {
	v, _ := r[name].(bool)
	return v
}

// RowPrecision resolves the money precision for a raw row before decoding.
type RowPrecision func(raw map[string]string) int

// RecordPrecision resolves the money precision for a typed record before
// encoding.
type RecordPrecision func(rec Record) int

// Decode converts a raw row into a typed Record. Schema fields missing from
// the row take their type default, which is how files written before a column
// existed are migrated on load. Keys not named by the schema are dropped.
// Decode never fails: unparseable values degrade to the type default.
func (s Schema) Decode(raw map[string]string, precision int) Record {
	rec := make(Record, len(s.Fields))
	for _, f := range s.Fields {
		v, ok := raw[f.Name]
		switch f.Type {
		case FieldString:
			rec[f.Name] = v
		case FieldNumber:
			var n int64
			if ok {
				n, _ = strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			}
			rec[f.Name] = n
		case FieldBool:
			rec[f.Name] = ok && v == "true"
		case FieldMoney:
			var m int64
			if ok {
				m = ParseMoney(v, precision)
			}
			rec[f.Name] = m
		}
	}
	return rec
}

// Encode converts a typed Record into a raw row, emitting every schema column
// in order so that re-serializing an in-memory record upgrades an old file to
// the current column set on the next write.
func (s Schema) Encode(rec Record, precision int) map[string]string {
	raw := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		switch f.Type {
		case FieldString:
			raw[f.Name] = rec.String(f.Name)
		case FieldNumber:
			raw[f.Name] = strconv.FormatInt(rec.Int(f.Name), 10)
		case FieldBool:
			raw[f.Name] = strconv.FormatBool(rec.Bool(f.Name))
		case FieldMoney:
			raw[f.Name] = FormatMoney(rec.Int(f.Name), precision)
		}
	}
	return raw
}

// ParseMoney converts a decimal string into integer minor units at the given
// precision, rounding to the nearest unit. Empty or malformed input yields 0.
// Scaling goes through exact decimal arithmetic; the naive float multiply
// would drift for values like 0.10.
func ParseMoney(s string, precision int) int64 {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return d.Shift(int32(precision)).Round(0).IntPart()
}

// ParseMoneyStrict converts typed-in decimal input into integer minor units,
// rejecting anything that is not a number. ParseMoney's degrade-to-zero is
// for reading stored rows; interactive input gets an error instead, so a typo
// can never become a silent zero amount. The empty string is still 0.
func ParseMoneyStrict(s string, precision int) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("malformed amount %q", s)
	}
	return d.Shift(int32(precision)).Round(0).IntPart(), nil
}

// FormatMoney renders integer minor units as a fixed-decimal string with
// exactly precision digits. Precision 0 produces no decimal point.
func FormatMoney(minor int64, precision int) string {
	return decimal.NewFromInt(minor).Shift(-int32(precision)).StringFixed(int32(precision))
}
