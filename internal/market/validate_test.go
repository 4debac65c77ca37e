package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAddress(t *testing.T) {
	assert.NoError(t, ValidateAddress("0xeD206F25fB9C73cbB61A15916E02F772B8404C14"))
	assert.NoError(t, ValidateAddress("0x0000000000000000000000000000000000000000"))

	for _, in := range []string{
		"",
		"0x",
		"eD206F25fB9C73cbB61A15916E02F772B8404C14",        // no prefix
		"0xeD206F25fB9C73cbB61A15916E02F772B8404C1",       // 39 digits
		"0xeD206F25fB9C73cbB61A15916E02F772B8404C145",     // 41 digits
		"0xGG206F25fB9C73cbB61A15916E02F772B8404C14",      // non-hex
		" 0xeD206F25fB9C73cbB61A15916E02F772B8404C14",     // leading space
		"vitalik.eth",
	} {
		t.Run(in, func(t *testing.T) {
			assert.Error(t, ValidateAddress(in))
		})
	}
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, ValidatePrice("0.1"))
	assert.Error(t, ValidatePrice("0"))
	assert.Error(t, ValidatePrice("-1"))
	assert.Error(t, ValidatePrice("free"))
}

func TestValidateRoyalty(t *testing.T) {
	assert.NoError(t, ValidateRoyalty(0))
	assert.NoError(t, ValidateRoyalty(500))
	assert.NoError(t, ValidateRoyalty(1000))
	assert.Error(t, ValidateRoyalty(1001))
	assert.Error(t, ValidateRoyalty(1100))
	assert.Error(t, ValidateRoyalty(-1))
}

func TestParseTokenID(t *testing.T) {
	id, err := parseTokenID("42")
	require.NoError(t, err)
	assert.Equal(t, "42", id.String())

	for _, in := range []string{"", "-1", "0x2a", "abc", "1.5"} {
		_, err := parseTokenID(in)
		assert.Error(t, err, in)
	}
}
