package customer

import (
	"fmt"

	"bank_e2e/application/pages/base"
	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"
)

type Locators struct {
	*base.Locators
}

func NewLocators(doc interfaces.Document) *Locators {
	return &Locators{Locators: base.NewLocators(doc)}
}

// Customer selection

func (l *Locators) UserSelect() interfaces.Element {
	return l.Locate(entities.ByCSS("#userSelect"))
}

func (l *Locators) LoginButton() interfaces.Element {
	return l.Locate(entities.ByRole("button", "Login"))
}

func (l *Locators) YourNameLabel() interfaces.Element {
	return l.Locate(entities.ByText("Your Name :"))
}

// Account home

func (l *Locators) WelcomeMessage() interfaces.Element {
	return l.Locate(entities.ByCSS("span.fontBig"))
}

// accountInfo - the three bold values: number, balance, currency
func (l *Locators) accountInfo() entities.Selector {
	return entities.ByCSS("div[ng-hide='noAccount'] strong.ng-binding")
}

func (l *Locators) AccountNumber() interfaces.Element {
	return l.Locate(l.accountInfo().First())
}

func (l *Locators) Balance() interfaces.Element {
	return l.Locate(l.accountInfo().Nth(1))
}

func (l *Locators) Currency() interfaces.Element {
	return l.Locate(l.accountInfo().Nth(2))
}

// AccountInfoByLabel - the value printed right after "label :"
func (l *Locators) AccountInfoByLabel(label string) interfaces.Element {
	return l.Locate(entities.ByXPath(fmt.Sprintf(
		"//strong[preceding-sibling::text()[1][contains(normalize-space(.), %s)]]",
		entities.XPathLiteral(label))))
}

func (l *Locators) AccountSelect() interfaces.Element {
	return l.Locate(entities.ByCSS("#accountSelect"))
}

// Tabs. Deposit shares its name with the form's submit button, so the tabs
// are matched by their handlers.

func (l *Locators) TransactionsButton() interfaces.Element {
	return l.Locate(entities.ByCSS("button[ng-click='transactions()']"))
}

func (l *Locators) DepositButton() interfaces.Element {
	return l.Locate(entities.ByCSS("button[ng-click='deposit()']"))
}

func (l *Locators) WithdrawalButton() interfaces.Element {
	return l.Locate(entities.ByCSS("button[ng-click='withdrawl()']"))
}

// Deposit and withdrawal panels

func (l *Locators) DepositLabel() interfaces.Element {
	return l.Locate(entities.ByText("Amount to be Deposited :"))
}

func (l *Locators) WithdrawalLabel() interfaces.Element {
	return l.Locate(entities.ByText("Amount to be Withdrawn :"))
}

func (l *Locators) AmountInput() interfaces.Element {
	return l.Locate(entities.ByPlaceholder("amount"))
}

func (l *Locators) DepositConfirmButton() interfaces.Element {
	return l.Locate(entities.ByCSS("form[name='myForm'] button[type='submit']"))
}

func (l *Locators) WithdrawConfirmButton() interfaces.Element {
	return l.Locate(entities.ByCSS("form[name='myForm'] button[type='submit']"))
}

func (l *Locators) SuccessMessage() interfaces.Element {
	return l.Locate(entities.ByCSS("span[ng-show='message']"))
}

// Transactions

func (l *Locators) TransactionsTable() interfaces.Element {
	return l.Locate(entities.ByCSS("table.table"))
}

func (l *Locators) TransactionRows() interfaces.Element {
	return l.Locate(entities.ByCSS("table.table tbody tr"))
}

// TransactionRow - zero-based row of the transactions table
func (l *Locators) TransactionRow(index int) interfaces.Element {
	return l.Locate(entities.ByCSS("table.table tbody tr").Nth(index))
}

func (l *Locators) BackButton() interfaces.Element {
	return l.Locate(entities.ByRole("button", "Back"))
}

func (l *Locators) ResetButton() interfaces.Element {
	return l.Locate(entities.ByRole("button", "Reset"))
}
