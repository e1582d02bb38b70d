package amount

import (
	"errors"
	"testing"

	"tokentrip-marketplace/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSmallestUnit(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
	}{
		{"1", 1000000000},
		{"0.5", 500000000},
		{"1.25", 1250000000},
		{" 2 ", 2000000000},
		{"0.000000001", 1},
		{"0.0000000015", 2},
		{"0.0000000014", 1},
		{"1e2", 100000000000},
		{"18446744073.709551615", 18446744073709551615},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ToSmallestUnit("price", tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestToSmallestUnitRejects(t *testing.T) {
	for _, in := range []string{"", "0", "0.0", "-1", "abc", "1,5", "NaN", "0.0000000001", "18446744073.709551616"} {
		t.Run(in, func(t *testing.T) {
			_, err := ToSmallestUnit("price", in)
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err), "expected a validation error, got %T", err)
			assert.True(t, errors.Is(err, apperr.ErrInvalidAmount))
		})
	}
}

func TestToSmallestUnitMonotonic(t *testing.T) {
	inputs := []string{"0.000000001", "0.1", "0.1000000004", "0.1000000006", "0.5", "1", "1.000000001", "10", "123.456"}
	prev := uint64(0)
	for _, in := range inputs {
		got, err := ToSmallestUnit("amount", in)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev, "conversion must not decrease at %s", in)
		prev = got
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, 5.0, Display(5000000000))
	assert.Equal(t, 5.0, DisplayString("5000000000"))
	assert.Equal(t, 0.25, DisplayString("250000000"))
	assert.Equal(t, 0.0, DisplayString("oops"))
	assert.Equal(t, "5.0", Format(5000000000, 1))
}
