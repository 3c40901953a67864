package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhone(t *testing.T) {
	valid := []string{
		"+6421345678",
		"021345678",
		"0211234567",
		"+64211234567",
		"093555123",
	}
	for _, p := range valid {
		assert.NoError(t, Phone(p), "expected %q to be valid", p)
	}

	invalid := []string{
		"",
		"12345",
		"+61212345678",   // wrong country code
		"0012345678",     // second digit must be 2-9
		"02134",          // too short
		"+642134567890a", // trailing letter
		"02112345678901", // too long
	}
	for _, p := range invalid {
		assert.ErrorIs(t, Phone(p), ErrInvalidPhone, "expected %q to be invalid", p)
	}
}

func TestPostcode(t *testing.T) {
	assert.NoError(t, Postcode("0610"))
	assert.NoError(t, Postcode("8041"))

	for _, p := range []string{"", "123", "12345", "80a1", " 8041"} {
		assert.ErrorIs(t, Postcode(p), ErrInvalidPostcode, "expected %q to be invalid", p)
	}
}

func TestBankAccount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain digits", "121234123456700", "12-1234-1234567-00"},
		{"hyphenated input", "12-1234-1234567-00", "12-1234-1234567-00"},
		{"spaces as separators", "12 1234 1234567 00", "12-1234-1234567-00"},
		{"leading zeros stripped", "010200000123499", "01-0200-1234-99"},
		{"account collapses to zero", "120100000000005", "12-0100-0-05"},
		{"minimum 12 digits", "121234123400", "12-1234-1234-00"},
		{"maximum 17 digits", "12123412345678900", "12-1234-123456789-00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BankAccount(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBankAccountIdempotent(t *testing.T) {
	canonical, err := BankAccount("0102-0456789-012-34")
	require.NoError(t, err)

	again, err := BankAccount(canonical)
	require.NoError(t, err)
	assert.Equal(t, canonical, again)
}

func TestBankAccountLengthBounds(t *testing.T) {
	_, err := BankAccount(strings.Repeat("1", 11))
	assert.ErrorIs(t, err, ErrBankAccountLength)

	_, err = BankAccount(strings.Repeat("1", 18))
	assert.ErrorIs(t, err, ErrBankAccountLength)

	_, err = BankAccount(strings.Repeat("1", 12))
	assert.NoError(t, err)

	_, err = BankAccount(strings.Repeat("1", 17))
	assert.NoError(t, err)

	_, err = BankAccount("no digits at all")
	assert.ErrorIs(t, err, ErrBankAccountLength)
}
