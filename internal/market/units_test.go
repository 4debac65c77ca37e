package market

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEther(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0.1", "100000000000000000"},
		{"1", "1000000000000000000"},
		{"0.0005", "500000000000000"},
		{"2.5", "2500000000000000000"},
		{"0.000000000000000001", "1"},
		{"0", "0"},
		{".5", "500000000000000000"},
		{" 1 ", "1000000000000000000"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			wei, err := ParseEther(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, wei.String())
		})
	}
}

func TestParseEtherRejects(t *testing.T) {
	for _, in := range []string{
		"",
		"-1",
		"abc",
		"1.2.3",
		"0.0000000000000000001", // 19 decimal places
		"1e18",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseEther(in)
			assert.Error(t, err)
		})
	}
}

func TestFormatEther(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"100000000000000000", "0.1"},
		{"1000000000000000000", "1"},
		{"500000000000000", "0.0005"},
		{"1", "0.000000000000000001"},
		{"0", "0"},
		{"1025000000000000000", "1.025"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			n, ok := new(big.Int).SetString(tc.in, 10)
			require.True(t, ok)
			assert.Equal(t, tc.want, FormatEther(n))
		})
	}
	assert.Equal(t, "0", FormatEther(nil))
}

func TestFormatEtherString(t *testing.T) {
	assert.Equal(t, "0.1", FormatEtherString("100000000000000000"))
	assert.Equal(t, "bogus", FormatEtherString("bogus"))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, in := range []string{"0.1", "1", "0.0005", "123.456"} {
		wei, err := ParseEther(in)
		require.NoError(t, err)
		assert.Equal(t, in, FormatEther(wei))
	}
}
