package ledger

import (
	"math"

	"github.com/tfinlab/tfin/sim"
)

// A TransactionItem is one line item of a transaction: an amount applied to
// one account.
type TransactionItem struct {
	Account *Account
	Amount  float64
}

// A Transaction is a set of balanced debit and credit line items. It is a
// concrete simulation event: dispatching it applies the line items to their
// accounts.
type Transaction struct {
	*sim.EventBase

	debits  []TransactionItem
	credits []TransactionItem
}

// NewTransaction creates an empty transaction happening at time t.
func NewTransaction(t sim.VTime, name string) *Transaction {
	return &Transaction{EventBase: sim.NewEventBase(t, name)}
}

func validItem(account *Account, amount float64) bool {
	return account != nil && amount > 0
}

// AddDebit adds a debit line item. Line items with no account or a
// non-positive amount are silently ignored.
func (t *Transaction) AddDebit(account *Account, amount float64) {
	if !validItem(account, amount) {
		return
	}

	t.debits = append(t.debits, TransactionItem{Account: account, Amount: amount})
}

// AddCredit adds a credit line item. Line items with no account or a
// non-positive amount are silently ignored.
func (t *Transaction) AddCredit(account *Account, amount float64) {
	if !validItem(account, amount) {
		return
	}

	t.credits = append(t.credits, TransactionItem{Account: account, Amount: amount})
}

// Debits returns the debit line items.
func (t *Transaction) Debits() []TransactionItem {
	return t.debits
}

// Credits returns the credit line items.
func (t *Transaction) Credits() []TransactionItem {
	return t.credits
}

// NEntries returns the total number of line items.
func (t *Transaction) NEntries() int {
	return len(t.debits) + len(t.credits)
}

// TotalDebits sums the debit line items.
func (t *Transaction) TotalDebits() float64 {
	total := 0.0
	for _, item := range t.debits {
		total += item.Amount
	}
	return total
}

// TotalCredits sums the credit line items.
func (t *Transaction) TotalCredits() float64 {
	total := 0.0
	for _, item := range t.credits {
		total += item.Amount
	}
	return total
}

// IsBalanced reports whether total debits equal total credits.
func (t *Transaction) IsBalanced() bool {
	return math.Abs(t.TotalDebits()-t.TotalCredits()) < 1e-9
}

// Clear removes all line items.
func (t *Transaction) Clear() {
	t.debits = nil
	t.credits = nil
}

// Apply posts the transaction to its accounts, but only if it is balanced.
// An unbalanced transaction is not applied at all: no error, no partial
// application. Callers that need the posting to have happened must check
// IsBalanced first.
func (t *Transaction) Apply() {
	if !t.IsBalanced() {
		return
	}

	for _, item := range t.debits {
		item.Account.Debit(item.Amount)
	}
	for _, item := range t.credits {
		item.Account.Credit(item.Amount)
	}
}

// Dispatch applies the transaction. Transactions never yield follow-on
// events.
func (t *Transaction) Dispatch(_ sim.Context) ([]sim.Event, error) {
	t.Apply()
	return nil, nil
}
