package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString_Unmarshal(t *testing.T) {
	var v struct {
		ID FlexString `json:"id"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"id": 42}`), &v))
	assert.Equal(t, "42", v.ID.String())

	require.NoError(t, json.Unmarshal([]byte(`{"id": "emp-7"}`), &v))
	assert.Equal(t, "emp-7", v.ID.String())

	require.NoError(t, json.Unmarshal([]byte(`{"id": null}`), &v))
	assert.Equal(t, "", v.ID.String())

	assert.Error(t, json.Unmarshal([]byte(`{"id": true}`), &v))
}

func TestFlexFloat_Unmarshal(t *testing.T) {
	cases := []struct {
		input string
		want  FlexFloat
	}{
		{`8`, NewFlexFloat(8)},
		{`7.5`, NewFlexFloat(7.5)},
		{`"8.00"`, NewFlexFloat(8)},
		{`null`, FlexFloat{}},
		{`""`, FlexFloat{}},
		{`"NaN"`, FlexFloat{}},
		{`"Infinity"`, FlexFloat{}},
		{`"-Inf"`, FlexFloat{}},
	}
	for _, c := range cases {
		var got FlexFloat
		require.NoError(t, json.Unmarshal([]byte(c.input), &got), c.input)
		assert.Equal(t, c.want, got, c.input)
	}

	var bad FlexFloat
	assert.Error(t, json.Unmarshal([]byte(`"eight"`), &bad))
}

func TestFlexFloat_Marshal(t *testing.T) {
	b, err := json.Marshal(struct {
		A FlexFloat `json:"a"`
		B FlexFloat `json:"b"`
	}{A: NewFlexFloat(7.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":7.5,"b":null}`, string(b))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 5.64, Round2(39.5/7))
	assert.Equal(t, 8.0, Round2(8))
}
