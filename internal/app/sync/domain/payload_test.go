package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadString(t *testing.T) {
	p := Payload{
		"NAME1": "ACME Corp",
		"NETPR": 15.5,
		"COUNT": float64(3),
		"BAD":   []any{"x"},
	}

	assert.Equal(t, "ACME Corp", p.String("NAME1"))
	assert.Equal(t, "15.5", p.String("NETPR"))
	assert.Equal(t, "3", p.String("COUNT"))
	assert.Equal(t, "", p.String("BAD"))
	assert.Equal(t, "", p.String("MISSING"))
}

func TestPayloadStringOr(t *testing.T) {
	p := Payload{"NAME1": "", "LAND1": "DE"}

	assert.Equal(t, "DE", p.StringOr("LAND1", "ES"))
	assert.Equal(t, "Unknown", p.StringOr("NAME1", "Unknown"))
	assert.Equal(t, "ES", p.StringOr("MISSING", "ES"))
}

func TestPayloadFloat(t *testing.T) {
	p := Payload{
		"BRGEW":   12.34,
		"NETPR":   "99.90",
		"GARBAGE": "abc",
	}

	v, ok := p.Float("BRGEW")
	require.True(t, ok)
	assert.Equal(t, 12.34, v)

	// String-encoded decimals are the source system's usual encoding.
	v, ok = p.Float("NETPR")
	require.True(t, ok)
	assert.Equal(t, 99.90, v)

	_, ok = p.Float("GARBAGE")
	assert.False(t, ok)

	_, ok = p.Float("MISSING")
	assert.False(t, ok)
}

func TestPayloadSubAndList(t *testing.T) {
	p := Payload{
		"OUT_WA_MATNR": map[string]any{"NETPR": "10.00"},
		"X_MAT_FOUND": []any{
			map[string]any{"MATNR": "MAT-1"},
			"not-an-object",
			map[string]any{"MATNR": "MAT-2"},
		},
	}

	sub, ok := p.Sub("OUT_WA_MATNR")
	require.True(t, ok)
	assert.Equal(t, "10.00", sub.String("NETPR"))

	_, ok = p.Sub("X_MAT_FOUND")
	assert.False(t, ok)

	list, ok := p.List("X_MAT_FOUND")
	require.True(t, ok)
	require.Len(t, list, 2)
	assert.Equal(t, "MAT-1", list[0].String("MATNR"))
	assert.Equal(t, "MAT-2", list[1].String("MATNR"))

	_, ok = p.List("OUT_WA_MATNR")
	assert.False(t, ok)
}

func TestPayloadJSON(t *testing.T) {
	t.Run("nil payload renders an empty object", func(t *testing.T) {
		var p Payload
		assert.Equal(t, "{}", p.JSON())
	})

	t.Run("round trips simple fields", func(t *testing.T) {
		p := Payload{"KUNNR": "CUST001"}
		assert.JSONEq(t, `{"KUNNR":"CUST001"}`, p.JSON())
	})
}
