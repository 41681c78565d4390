package login

import (
	"context"

	"bank_e2e/application/pages/base"
	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"
)

var (
	CustomerURL = entities.Glob("**/customer")
	ManagerURL  = entities.Glob("**/manager")
)

type Actions struct {
	*base.Actions
	locators *Locators
}

func NewActions(doc interfaces.Document, settings base.Settings) *Actions {
	return &Actions{
		Actions:  base.NewActions(doc, settings),
		locators: NewLocators(doc),
	}
}

// Navigate - opens the login page; always lands in the logged-out state
func (a *Actions) Navigate(ctx context.Context) error {
	return a.NavigateTo(ctx, "login")
}

// ClickCustomerLogin - goes to the customer selection page
func (a *Actions) ClickCustomerLogin(ctx context.Context) error {
	return a.ClickAndWait(ctx, a.locators.CustomerLoginButton(), CustomerURL)
}

// ClickBankManagerLogin - goes to the manager home page
func (a *Actions) ClickBankManagerLogin(ctx context.Context) error {
	return a.ClickAndWait(ctx, a.locators.BankManagerLoginButton(), ManagerURL)
}

// ClickButton - clicks a button by its accessible name without waiting
func (a *Actions) ClickButton(ctx context.Context, name string) error {
	return a.Click(ctx, a.locators.ButtonByName(name))
}
