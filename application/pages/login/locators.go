package login

import (
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

func (l *Locators) CustomerLoginButton() interfaces.Element {
	return l.Locate(entities.ByRole("button", "Customer Login"))
}

func (l *Locators) BankManagerLoginButton() interfaces.Element {
	return l.Locate(entities.ByRole("button", "Bank Manager Login"))
}
