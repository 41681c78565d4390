package base

import (
	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"
)

// Locators - elements shared by every page of the app
type Locators struct {
	doc interfaces.Document
}

func NewLocators(doc interfaces.Document) *Locators {
	return &Locators{doc: doc}
}

// Locate - builds a reference on the bound document
func (l *Locators) Locate(selector entities.Selector) interfaces.Element {
	return l.doc.Locate(selector)
}

func (l *Locators) HomeButton() interfaces.Element {
	return l.doc.Locate(entities.ByRole("button", "Home"))
}

func (l *Locators) LogoutButton() interfaces.Element {
	return l.doc.Locate(entities.ByRole("button", "Logout"))
}

// ButtonByName - any button by its accessible name
func (l *Locators) ButtonByName(name string) interfaces.Element {
	return l.doc.Locate(entities.ByRole("button", name))
}
