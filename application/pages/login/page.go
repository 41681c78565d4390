package login

import (
	"bank_e2e/application/pages/base"
	"bank_e2e/domain/interfaces"
)

// Page - the login screen
type Page struct {
	Locators    *Locators
	Actions     *Actions
	Validations *Validations
}

func NewPage(doc interfaces.Document, settings base.Settings) *Page {
	return &Page{
		Locators:    NewLocators(doc),
		Actions:     NewActions(doc, settings),
		Validations: NewValidations(doc, settings),
	}
}
