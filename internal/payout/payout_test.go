package payout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSetupLater(t *testing.T) {
	// Whatever was submitted, setupNow=false forces the quiescent bank default.
	pref, errs := Resolve(false, Input{
		Method:            "kiwisaver",
		KiwiSaverProvider: "Simplicity",
		KiwiSaverMemberID: "KS123456",
	})

	require.Empty(t, errs)
	assert.Equal(t, MethodBank, pref.Method)
	require.NotNil(t, pref.Bank)
	assert.Empty(t, pref.Bank.Name)
	assert.Empty(t, pref.Bank.AccountNumber)
	assert.Nil(t, pref.ChildAccount)
	assert.Nil(t, pref.KiwiSaver)
}

func TestResolveInvalidMethod(t *testing.T) {
	_, errs := Resolve(true, Input{Method: "cheque"})
	assert.Equal(t, []string{"invalid payout method"}, errs)

	_, errs = Resolve(true, Input{Method: ""})
	assert.Equal(t, []string{"invalid payout method"}, errs)
}

func TestResolveBank(t *testing.T) {
	pref, errs := Resolve(true, Input{
		Method:            "bank",
		BankName:          "Aroha Smith",
		BankAccountNumber: "12-1234-1234567-00",
	})

	require.Empty(t, errs)
	assert.Equal(t, MethodBank, pref.Method)
	require.NotNil(t, pref.Bank)
	assert.Equal(t, "Aroha Smith", pref.Bank.Name)
	assert.Equal(t, "12-1234-1234567-00", pref.Bank.AccountNumber)
	assert.Nil(t, pref.ChildAccount)
	assert.Nil(t, pref.KiwiSaver)
}

func TestResolveBankErrors(t *testing.T) {
	// Both failures are reported together, not fail-fast.
	_, errs := Resolve(true, Input{
		Method:            "bank",
		BankName:          "",
		BankAccountNumber: "12345",
	})
	assert.Equal(t, []string{"account holder name is required", "invalid bank account"}, errs)
}

func TestResolveChildAccount(t *testing.T) {
	pref, errs := Resolve(true, Input{
		Method:    "child_account",
		ChildName: "Tama Smith",
	})

	require.Empty(t, errs)
	assert.Equal(t, MethodChildAccount, pref.Method)
	require.NotNil(t, pref.ChildAccount)
	assert.Equal(t, "Tama Smith", pref.ChildAccount.ChildName)

	_, errs = Resolve(true, Input{Method: "child_account"})
	assert.Equal(t, []string{"child's name is required"}, errs)
}

func TestResolveKiwiSaver(t *testing.T) {
	pref, errs := Resolve(true, Input{
		Method:            "kiwisaver",
		KiwiSaverProvider: "Simplicity",
		KiwiSaverMemberID: "KS123456",
	})

	require.Empty(t, errs)
	assert.Equal(t, MethodKiwiSaver, pref.Method)
	require.NotNil(t, pref.KiwiSaver)
	assert.Equal(t, "Simplicity", pref.KiwiSaver.Provider)
	assert.Equal(t, "KS123456", pref.KiwiSaver.MemberID)

	_, errs = Resolve(true, Input{Method: "kiwisaver"})
	assert.Equal(t, []string{"KiwiSaver provider is required", "KiwiSaver member ID is required"}, errs)
}

func TestResolveDeterministic(t *testing.T) {
	in := Input{Method: "bank", BankName: "A", BankAccountNumber: "121234123456700"}
	first, errs1 := Resolve(true, in)
	second, errs2 := Resolve(true, in)
	assert.Equal(t, errs1, errs2)
	assert.Equal(t, first, second)
}
