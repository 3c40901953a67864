// Package normalize contains pure transforms that turn raw user input
// (phone numbers, postcodes, bank account numbers) into canonical forms.
package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidPhone is returned when a phone number does not match the NZ pattern
	ErrInvalidPhone = errors.New("invalid NZ phone number")

	// ErrInvalidPostcode is returned when a postcode is not exactly 4 digits
	ErrInvalidPostcode = errors.New("postcode must be exactly 4 digits")

	// ErrBankAccountLength is returned when a bank account has fewer than 12
	// or more than 17 digits after separators are stripped
	ErrBankAccountLength = errors.New("bank account must contain 12 to 17 digits")
)

// NZ mobile and landline numbers: +64 or 0, then a digit 2-9, then 7-8 more digits.
var phonePattern = regexp.MustCompile(`^(\+64|0)[2-9]\d{7,8}$`)

var postcodePattern = regexp.MustCompile(`^\d{4}$`)

// Phone checks a raw phone number against the NZ mobile/landline pattern.
// It is a pattern check only; no reformatting is performed.
func Phone(raw string) error {
	if !phonePattern.MatchString(raw) {
		return ErrInvalidPhone
	}
	return nil
}

// Postcode checks that a raw postcode is exactly 4 digits.
func Postcode(raw string) error {
	if !postcodePattern.MatchString(raw) {
		return ErrInvalidPostcode
	}
	return nil
}

// BankAccount normalizes a raw NZ bank account number into the canonical
// BB-bbbb-AAAAAAA-SS form: 2-digit bank code, 4-digit branch, account body
// with leading zeros stripped (collapsing to "0"), 2-digit suffix.
// Separators in the input are ignored; anything outside 12-17 digits fails.
// Normalizing an already-canonical string reproduces it unchanged.
func BankAccount(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) < 12 || len(d) > 17 {
		return "", ErrBankAccountLength
	}

	bank := d[:2]
	branch := d[2:6]
	account := strings.TrimLeft(d[6:len(d)-2], "0")
	if account == "" {
		account = "0"
	}
	suffix := d[len(d)-2:]

	return fmt.Sprintf("%s-%s-%s-%s", bank, branch, account, suffix), nil
}
