package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	Fields: []Field{
		{Name: "id", Type: FieldString},
		{Name: "count", Type: FieldNumber},
		{Name: "hidden", Type: FieldBool},
		{Name: "amount", Type: FieldMoney},
	},
}

func TestDecodeDefaults(t *testing.T) {
	t.Run("missing columns take type defaults", func(t *testing.T) {
		rec := testSchema.Decode(map[string]string{"id": "7"}, 2)
		assert.Equal(t, "7", rec.String("id"))
		assert.Equal(t, int64(0), rec.Int("count"))
		assert.False(t, rec.Bool("hidden"))
		assert.Equal(t, int64(0), rec.Int("amount"))
	})

	t.Run("extra columns are dropped", func(t *testing.T) {
		rec := testSchema.Decode(map[string]string{"id": "1", "legacy": "x"}, 2)
		_, ok := rec["legacy"]
		assert.False(t, ok)
	})

	t.Run("malformed values degrade instead of failing", func(t *testing.T) {
		rec := testSchema.Decode(map[string]string{
			"id":     "1",
			"count":  "not-a-number",
			"hidden": "yes",
			"amount": "12.three",
		}, 2)
		assert.Equal(t, int64(0), rec.Int("count"))
		assert.False(t, rec.Bool("hidden"))
		assert.Equal(t, int64(0), rec.Int("amount"))
	})
}

func TestEncodeEmitsEveryColumn(t *testing.T) {
	raw := testSchema.Encode(Record{"id": "3"}, 2)
	require.Len(t, raw, len(testSchema.Fields))
	assert.Equal(t, "3", raw["id"])
	assert.Equal(t, "0", raw["count"])
	assert.Equal(t, "false", raw["hidden"])
	assert.Equal(t, "0.00", raw["amount"])
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		rec       Record
	}{
		{
			name:      "two decimal places",
			precision: 2,
			rec:       Record{"id": "1", "count": int64(42), "hidden": true, "amount": int64(-123456)},
		},
		{
			name:      "zero decimal places",
			precision: 0,
			rec:       Record{"id": "2", "count": int64(0), "hidden": false, "amount": int64(5000)},
		},
		{
			name:      "eight decimal places",
			precision: 8,
			rec:       Record{"id": "3", "count": int64(-1), "hidden": false, "amount": int64(100000000)},
		},
		{
			name:      "one minor unit",
			precision: 2,
			rec:       Record{"id": "4", "count": int64(1), "hidden": true, "amount": int64(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := testSchema.Encode(tt.rec, tt.precision)
			assert.Equal(t, tt.rec, testSchema.Decode(raw, tt.precision))
		})
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in        string
		precision int
		want      int64
	}{
		{"12.34", 2, 1234},
		{"0.10", 2, 10},
		{"-25.50", 2, -2550},
		{"1000", 0, 1000},
		{"0.00000001", 8, 1},
		{"12.345", 2, 1235}, // rounds to nearest
		{"12.344", 2, 1234},
		{"", 2, 0},
		{"garbage", 2, 0},
		{" 7.50 ", 2, 750},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMoney(tt.in, tt.precision))
		})
	}
}

func TestParseMoneyStrict(t *testing.T) {
	t.Run("accepts what ParseMoney accepts", func(t *testing.T) {
		tests := []struct {
			in        string
			precision int
			want      int64
		}{
			{"12.34", 2, 1234},
			{"-25.50", 2, -2550},
			{" 7.50 ", 2, 750},
			{"1000", 0, 1000},
			{"", 2, 0}, // empty means "not provided", not a typo
		}
		for _, tt := range tests {
			t.Run(tt.in, func(t *testing.T) {
				got, err := ParseMoneyStrict(tt.in, tt.precision)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	})

	t.Run("rejects input that ParseMoney would coerce to zero", func(t *testing.T) {
		for _, in := range []string{"12,34", "garbage", "12.3.4", "$5"} {
			t.Run(in, func(t *testing.T) {
				_, err := ParseMoneyStrict(in, 2)
				assert.Error(t, err)
			})
		}
	})
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name      string
		minor     int64
		precision int
		want      string
	}{
		{"cents", 1234, 2, "12.34"},
		{"negative", -2550, 2, "-25.50"},
		{"sub-unit", 5, 2, "0.05"},
		{"zero precision drops the point", 5000, 0, "5000"},
		{"satoshi", 1, 8, "0.00000001"},
		{"zero", 0, 2, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(tt.minor, tt.precision))
		})
	}
}

// Summing parsed amounts must reproduce exact decimals; this is where a
// float64 path would leak 0.30000000000000004.
func TestNoFloatDrift(t *testing.T) {
	sum := ParseMoney("0.10", 2) + ParseMoney("0.20", 2)
	require.Equal(t, int64(30), sum)
	assert.Equal(t, "0.30", FormatMoney(sum, 2))
}

func TestPrecision(t *testing.T) {
	tests := []struct {
		currency string
		want     int
	}{
		{"USD", 2},
		{"EUR", 2},
		{"JPY", 0},
		{"BTC", 8},
		{"btc", 8},
		{" usd ", 2},
		{"XXUNKNOWN", 2},
		{"", 2},
	}

	for _, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			assert.Equal(t, tt.want, Precision(tt.currency))
		})
	}
}
