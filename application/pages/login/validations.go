package login

import (
	"context"

	"bank_e2e/application/pages/base"
	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"
)

const Title = "XYZ Bank"

var pageURL = entities.Regex(`.*#/login`)

type Validations struct {
	*base.Validations
	locators *Locators
}

func NewValidations(doc interfaces.Document, settings base.Settings) *Validations {
	return &Validations{
		Validations: base.NewValidations(doc, settings),
		locators:    NewLocators(doc),
	}
}

// VerifyPageLoaded - title is "XYZ Bank" and the URL ends in #/login
func (v *Validations) VerifyPageLoaded(ctx context.Context, opts ...base.CheckOption) error {
	if err := v.VerifyPageTitle(ctx, Title, opts...); err != nil {
		return err
	}
	return v.ExpectURL(ctx, pageURL, opts...)
}

// VerifyAllButtonsVisible - both login buttons and Home are shown
func (v *Validations) VerifyAllButtonsVisible(ctx context.Context, opts ...base.CheckOption) error {
	return v.ExpectAll(ctx, entities.Visible(), []interfaces.Element{
		v.locators.CustomerLoginButton(),
		v.locators.BankManagerLoginButton(),
		v.locators.HomeButton(),
	}, opts...)
}
