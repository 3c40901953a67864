// Package payout models how a customer receives reward value: direct bank
// deposit, a child's account, or KiwiSaver contributions.
package payout

import (
	"strings"

	"github.com/canback/pickup-platform/internal/normalize"
)

// Method identifies the payout mechanism.
type Method string

const (
	MethodBank         Method = "bank"
	MethodChildAccount Method = "child_account"
	MethodKiwiSaver    Method = "kiwisaver"
)

// Valid reports whether the method is one of the allowed values.
func (m Method) Valid() bool {
	switch m {
	case MethodBank, MethodChildAccount, MethodKiwiSaver:
		return true
	}
	return false
}

// BankDetails is the payout target for direct bank deposit.
// AccountNumber is always in canonical BB-bbbb-AAAAAAA-SS form.
type BankDetails struct {
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
}

// ChildAccountDetails is the payout target for a child's account.
type ChildAccountDetails struct {
	ChildName   string `json:"child_name"`
	BankAccount string `json:"bank_account,omitempty"`
}

// KiwiSaverDetails is the payout target for KiwiSaver contributions.
type KiwiSaverDetails struct {
	Provider string `json:"provider"`
	MemberID string `json:"member_id"`
}

// Preference is a closed union over the three payout methods. Exactly one
// variant pointer is non-nil, matching Method; fields of non-selected
// variants are never carried.
type Preference struct {
	Method       Method               `json:"method"`
	Bank         *BankDetails         `json:"bank,omitempty"`
	ChildAccount *ChildAccountDetails `json:"child_account,omitempty"`
	KiwiSaver    *KiwiSaverDetails    `json:"kiwisaver,omitempty"`
}

// DefaultPreference is the quiescent bank-variant default used when the
// customer has not set up a payout yet.
func DefaultPreference() Preference {
	return Preference{
		Method: MethodBank,
		Bank:   &BankDetails{},
	}
}

// Input carries the raw payout fields from a submission, before the
// resolver decides which variant applies.
type Input struct {
	Method            string `json:"payout_method"`
	BankName          string `json:"bank_name"`
	BankAccountNumber string `json:"bank_account_number"`
	ChildName         string `json:"child_name"`
	ChildBankAccount  string `json:"child_bank_account"`
	KiwiSaverProvider string `json:"kiwisaver_provider"`
	KiwiSaverMemberID string `json:"kiwisaver_member_id"`
}

// Resolve decides which payout variant applies and enforces its required
// fields. When setupNow is false the method is forced to bank with all
// variant fields cleared and no validation is performed. It is a pure
// function of its inputs; on failure the returned messages are non-empty
// and the zero Preference must be discarded.
func Resolve(setupNow bool, in Input) (Preference, []string) {
	if !setupNow {
		return DefaultPreference(), nil
	}

	method := Method(strings.TrimSpace(in.Method))
	if !method.Valid() {
		return Preference{}, []string{"invalid payout method"}
	}

	var errs []string
	switch method {
	case MethodBank:
		name := strings.TrimSpace(in.BankName)
		if name == "" {
			errs = append(errs, "account holder name is required")
		}
		account, err := normalize.BankAccount(in.BankAccountNumber)
		if err != nil {
			errs = append(errs, "invalid bank account")
		}
		if len(errs) > 0 {
			return Preference{}, errs
		}
		return Preference{
			Method: MethodBank,
			Bank:   &BankDetails{Name: name, AccountNumber: account},
		}, nil

	case MethodChildAccount:
		childName := strings.TrimSpace(in.ChildName)
		if childName == "" {
			return Preference{}, []string{"child's name is required"}
		}
		return Preference{
			Method: MethodChildAccount,
			ChildAccount: &ChildAccountDetails{
				ChildName:   childName,
				BankAccount: strings.TrimSpace(in.ChildBankAccount),
			},
		}, nil

	default: // MethodKiwiSaver
		provider := strings.TrimSpace(in.KiwiSaverProvider)
		memberID := strings.TrimSpace(in.KiwiSaverMemberID)
		if provider == "" {
			errs = append(errs, "KiwiSaver provider is required")
		}
		if memberID == "" {
			errs = append(errs, "KiwiSaver member ID is required")
		}
		if len(errs) > 0 {
			return Preference{}, errs
		}
		return Preference{
			Method:    MethodKiwiSaver,
			KiwiSaver: &KiwiSaverDetails{Provider: provider, MemberID: memberID},
		}, nil
	}
}
