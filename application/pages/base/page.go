package base

import "bank_e2e/domain/interfaces"

// Page - locators, actions and validations bound to one document
type Page struct {
	Locators    *Locators
	Actions     *Actions
	Validations *Validations
}

func NewPage(doc interfaces.Document, settings Settings) *Page {
	return &Page{
		Locators:    NewLocators(doc),
		Actions:     NewActions(doc, settings),
		Validations: NewValidations(doc, settings),
	}
}
