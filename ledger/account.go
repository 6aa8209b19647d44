// Package ledger provides a double-entry bookkeeping model that can be
// driven by the simulation engine. Transactions are events; the package
// contributes no scheduling logic of its own.
package ledger

import "fmt"

// AccountNature tells which side of an entry increases an account balance.
type AccountNature int

const (
	// DebitNature accounts (assets, expenses) grow when debited.
	DebitNature AccountNature = iota

	// CreditNature accounts (liabilities, equity, income) grow when
	// credited.
	CreditNature
)

// AccountType enumerates the five standard account categories.
type AccountType int

const (
	AccountTypeAsset AccountType = iota
	AccountTypeLiability
	AccountTypeEquity
	AccountTypeIncome
	AccountTypeExpense
)

// AccountTypes lists all account types in a fixed order. It is the single
// source the chart of accounts is built from.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeIncome,
	AccountTypeExpense,
}

// Nature returns which entry side increases balances of this account type.
func (t AccountType) Nature() AccountNature {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return DebitNature
	default:
		return CreditNature
	}
}

func (t AccountType) String() string {
	switch t {
	case AccountTypeAsset:
		return "ASSET"
	case AccountTypeLiability:
		return "LIABILITY"
	case AccountTypeEquity:
		return "EQUITY"
	case AccountTypeIncome:
		return "INCOME"
	case AccountTypeExpense:
		return "EXPENSE"
	default:
		return "UNKNOWN"
	}
}

// AccountTypeFromString converts an account type given as untyped external
// input, such as "asset" or "INCOME". It reports ok=false on anything it
// does not recognize.
func AccountTypeFromString(s string) (AccountType, bool) {
	switch s {
	case "asset", "ASSET", "Asset":
		return AccountTypeAsset, true
	case "liability", "LIABILITY", "Liability":
		return AccountTypeLiability, true
	case "equity", "EQUITY", "Equity":
		return AccountTypeEquity, true
	case "income", "INCOME", "Income":
		return AccountTypeIncome, true
	case "expense", "EXPENSE", "Expense":
		return AccountTypeExpense, true
	default:
		return 0, false
	}
}

// entrySide is one side of a double-entry line item.
type entrySide int

const (
	debitSide entrySide = iota
	creditSide
)

// applyEntry adjusts a balance for one side of an entry. A debit increases
// debit-nature accounts and decreases credit-nature accounts; a credit does
// the opposite.
func applyEntry(balance, amount float64, nature AccountNature, side entrySide) float64 {
	increases := (nature == DebitNature) == (side == debitSide)
	if increases {
		return balance + amount
	}
	return balance - amount
}

// An Account holds a running balance of one account type.
type Account struct {
	name        string
	accountType AccountType
	balance     float64
}

// NewAccount creates an account with a starting balance.
func NewAccount(accountType AccountType, name string, startingBalance float64) *Account {
	return &Account{
		name:        name,
		accountType: accountType,
		balance:     startingBalance,
	}
}

// Name returns the account name.
func (a *Account) Name() string {
	return a.name
}

// Type returns the account type.
func (a *Account) Type() AccountType {
	return a.accountType
}

// Balance returns the current balance.
func (a *Account) Balance() float64 {
	return a.balance
}

// SetBalance overwrites the current balance.
func (a *Account) SetBalance(amount float64) {
	a.balance = amount
}

// Debit applies a debit of the given amount to the account.
func (a *Account) Debit(amount float64) {
	a.balance = applyEntry(a.balance, amount, a.accountType.Nature(), debitSide)
}

// Credit applies a credit of the given amount to the account.
func (a *Account) Credit(amount float64) {
	a.balance = applyEntry(a.balance, amount, a.accountType.Nature(), creditSide)
}

func (a *Account) String() string {
	return fmt.Sprintf("%s (%s): $%.2f", a.name, a.accountType, a.balance)
}
