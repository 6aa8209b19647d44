package ledger

// A ChartOfAccounts manages and filters the accounts of one simulated
// entity, indexed by account type and then by name.
type ChartOfAccounts struct {
	accounts map[AccountType]map[string]*Account
}

// NewChartOfAccounts creates an empty chart with one bucket per account
// type.
func NewChartOfAccounts() *ChartOfAccounts {
	accounts := make(map[AccountType]map[string]*Account, len(AccountTypes))
	for _, t := range AccountTypes {
		accounts[t] = make(map[string]*Account)
	}

	return &ChartOfAccounts{accounts: accounts}
}

// Len returns the total number of accounts under management.
func (c *ChartOfAccounts) Len() int {
	total := 0
	for _, byName := range c.accounts {
		total += len(byName)
	}
	return total
}

// AddAccount adds an instantiated account to the chart. Nil accounts are
// ignored.
func (c *ChartOfAccounts) AddAccount(account *Account) {
	if account == nil {
		return
	}

	c.accounts[account.Type()][account.Name()] = account
}

// RemoveAccount removes an account from the chart. Removing an account the
// chart does not hold is a no-op.
func (c *ChartOfAccounts) RemoveAccount(account *Account) {
	if account == nil {
		return
	}

	byName := c.accounts[account.Type()]
	if existing, ok := byName[account.Name()]; ok && existing == account {
		delete(byName, account.Name())
	}
}

// HasAccount reports whether the chart holds the given account.
func (c *ChartOfAccounts) HasAccount(account *Account) bool {
	if account == nil {
		return false
	}

	existing, ok := c.accounts[account.Type()][account.Name()]
	return ok && existing == account
}

// CreateAndAddAccount creates an account from its constructor parameters,
// adds it to the chart, and returns it.
func (c *ChartOfAccounts) CreateAndAddAccount(
	accountType AccountType,
	accountName string,
	startingBalance float64,
) *Account {
	account := NewAccount(accountType, accountName, startingBalance)
	c.AddAccount(account)
	return account
}

// CreateAssetAccount creates and adds an asset account.
func (c *ChartOfAccounts) CreateAssetAccount(
	name string, startingBalance float64,
) *Account {
	return c.CreateAndAddAccount(AccountTypeAsset, name, startingBalance)
}

// CreateLiabilityAccount creates and adds a liability account.
func (c *ChartOfAccounts) CreateLiabilityAccount(
	name string, startingBalance float64,
) *Account {
	return c.CreateAndAddAccount(AccountTypeLiability, name, startingBalance)
}

// CreateEquityAccount creates and adds an equity account.
func (c *ChartOfAccounts) CreateEquityAccount(
	name string, startingBalance float64,
) *Account {
	return c.CreateAndAddAccount(AccountTypeEquity, name, startingBalance)
}

// CreateIncomeAccount creates and adds an income account.
func (c *ChartOfAccounts) CreateIncomeAccount(
	name string, startingBalance float64,
) *Account {
	return c.CreateAndAddAccount(AccountTypeIncome, name, startingBalance)
}

// CreateExpenseAccount creates and adds an expense account.
func (c *ChartOfAccounts) CreateExpenseAccount(
	name string, startingBalance float64,
) *Account {
	return c.CreateAndAddAccount(AccountTypeExpense, name, startingBalance)
}

// ByType returns the accounts of one account type, keyed by name.
func (c *ChartOfAccounts) ByType(accountType AccountType) map[string]*Account {
	return c.accounts[accountType]
}

// ByNameAndType returns the account with the given name and type, or nil if
// the chart holds no such account.
func (c *ChartOfAccounts) ByNameAndType(
	accountName string,
	accountType AccountType,
) *Account {
	return c.accounts[accountType][accountName]
}
