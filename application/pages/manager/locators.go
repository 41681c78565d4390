package manager

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

// Tabs share their names with submit buttons, so they are matched by handler

func (l *Locators) AddCustomerButton() interfaces.Element {
	return l.Locate(entities.ByCSS("button[ng-click='addCust()']"))
}

func (l *Locators) OpenAccountButton() interfaces.Element {
	return l.Locate(entities.ByCSS("button[ng-click='openAccount()']"))
}

func (l *Locators) CustomersButton() interfaces.Element {
	return l.Locate(entities.ByCSS("button[ng-click='showCust()']"))
}

// Add customer form

func (l *Locators) FirstNameInput() interfaces.Element {
	return l.Locate(entities.ByPlaceholder("First Name"))
}

func (l *Locators) LastNameInput() interfaces.Element {
	return l.Locate(entities.ByPlaceholder("Last Name"))
}

func (l *Locators) PostCodeInput() interfaces.Element {
	return l.Locate(entities.ByPlaceholder("Post Code"))
}

func (l *Locators) AddCustomerSubmitButton() interfaces.Element {
	return l.Locate(entities.ByCSS("form[name='myForm'] button[type='submit']"))
}

// Open account form

func (l *Locators) CustomerSelect() interfaces.Element {
	return l.Locate(entities.ByCSS("#userSelect"))
}

func (l *Locators) CurrencySelect() interfaces.Element {
	return l.Locate(entities.ByCSS("#currency"))
}

func (l *Locators) ProcessButton() interfaces.Element {
	return l.Locate(entities.ByRole("button", "Process"))
}

// Customers list

func (l *Locators) SearchCustomerInput() interfaces.Element {
	return l.Locate(entities.ByPlaceholder("Search Customer"))
}

func (l *Locators) CustomersTable() interfaces.Element {
	return l.Locate(entities.ByCSS("table.table"))
}

func (l *Locators) CustomerRows() interfaces.Element {
	return l.Locate(entities.ByCSS("table.table tbody tr"))
}

// CustomerRow - the row naming this exact customer. Rows are never matched by
// index since other runs may add or delete customers concurrently.
func (l *Locators) CustomerRow(firstName, lastName, postCode string) interfaces.Element {
	return l.Locate(entities.RowContaining(firstName, lastName, postCode))
}

func (l *Locators) CustomerRowByIndex(index int) interfaces.Element {
	return l.Locate(entities.ByCSS("table.table tbody tr").Nth(index))
}

// AccountNumberCell - fourth column of row
func (l *Locators) AccountNumberCell(row interfaces.Element) interfaces.Element {
	return row.Within(entities.ByCSS("td:nth-child(4)"))
}

func (l *Locators) DeleteButtonIn(row interfaces.Element) interfaces.Element {
	return row.Within(entities.ByCSS("button[ng-click='deleteCust(cust)']"))
}

func (l *Locators) DeleteButtonByIndex(index int) interfaces.Element {
	return l.DeleteButtonIn(l.CustomerRowByIndex(index))
}

// TableCellByText - a cell whose whole text is text
func (l *Locators) TableCellByText(text string) interfaces.Element {
	return l.Locate(entities.ByXPath(fmt.Sprintf("//td[normalize-space(.)=%s]", entities.XPathLiteral(text))))
}
