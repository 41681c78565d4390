package manager

import (
	"context"
	"fmt"
	"strings"

	"bank_e2e/application/pages/base"
	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"
)

const (
	CustomerAddedText  = "Customer added successfully"
	AccountCreatedText = "Account created successfully"
)

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

// VerifyManagerPageLoaded - on /manager with the three tabs shown
func (v *Validations) VerifyManagerPageLoaded(ctx context.Context, opts ...base.CheckOption) error {
	if err := v.ExpectURL(ctx, entities.Glob("**/manager"), opts...); err != nil {
		return err
	}
	return v.ExpectAll(ctx, entities.Visible(), []interfaces.Element{
		v.locators.AddCustomerButton(),
		v.locators.OpenAccountButton(),
		v.locators.CustomersButton(),
	}, opts...)
}

func (v *Validations) VerifyAddCustomerFormVisible(ctx context.Context, opts ...base.CheckOption) error {
	return v.ExpectAll(ctx, entities.Visible(), []interfaces.Element{
		v.locators.FirstNameInput(),
		v.locators.LastNameInput(),
		v.locators.PostCodeInput(),
	}, opts...)
}

func (v *Validations) VerifyOpenAccountFormVisible(ctx context.Context, opts ...base.CheckOption) error {
	return v.ExpectAll(ctx, entities.Visible(), []interfaces.Element{
		v.locators.CustomerSelect(),
		v.locators.CurrencySelect(),
		v.locators.ProcessButton(),
	}, opts...)
}

func (v *Validations) VerifyCustomersTableVisible(ctx context.Context, opts ...base.CheckOption) error {
	return v.Expect(ctx, v.locators.CustomersTable(), entities.Visible(), opts...)
}

func (v *Validations) VerifyCustomerCount(ctx context.Context, n int, opts ...base.CheckOption) error {
	return v.Expect(ctx, v.locators.CustomerRows(), entities.HasCount(n), opts...)
}

// VerifyCustomerExistsInTable - some cell reads exactly text
func (v *Validations) VerifyCustomerExistsInTable(ctx context.Context, text string, opts ...base.CheckOption) error {
	return v.Expect(ctx, v.locators.TableCellByText(text).First(), entities.Visible(), opts...)
}

// VerifyCustomerInTable - a row names first and last name. The newest row
// wins when several do.
func (v *Validations) VerifyCustomerInTable(ctx context.Context, firstName, lastName string, opts ...base.CheckOption) error {
	return v.Expect(ctx, v.row(firstName, lastName), entities.Visible(), opts...)
}

func (v *Validations) VerifyCustomerHasNoAccount(ctx context.Context, firstName, lastName string, opts ...base.CheckOption) error {
	return v.Expect(ctx, v.locators.AccountNumberCell(v.row(firstName, lastName)), entities.Empty(), opts...)
}

func (v *Validations) VerifyCustomerHasAccount(ctx context.Context, firstName, lastName string, opts ...base.CheckOption) error {
	return v.Expect(ctx, v.locators.AccountNumberCell(v.row(firstName, lastName)), entities.NotEmpty(), opts...)
}

// VerifyCustomerNotInTable - the row is gone from the DOM, not just hidden
func (v *Validations) VerifyCustomerNotInTable(ctx context.Context, firstName, lastName, postCode string, opts ...base.CheckOption) error {
	return v.Expect(ctx, v.locators.CustomerRow(firstName, lastName, postCode), entities.HasCount(0), opts...)
}

// VerifyCustomerAdded - the add customer alert reported success
func (v *Validations) VerifyCustomerAdded(outcome entities.DialogOutcome) error {
	return verifyOutcome(outcome, CustomerAddedText)
}

// VerifyAccountCreated - the process alert reported a new account
func (v *Validations) VerifyAccountCreated(outcome entities.DialogOutcome) error {
	return verifyOutcome(outcome, AccountCreatedText)
}

func (v *Validations) row(firstName, lastName string) interfaces.Element {
	return v.locators.Locate(entities.RowContaining(firstName, lastName).Last())
}

func verifyOutcome(outcome entities.DialogOutcome, text string) error {
	if outcome.Verdict == entities.DialogSuccess && strings.Contains(outcome.Message, text) {
		return nil
	}
	return entities.NewCheckError(entities.ErrAssertionFailed, "dialog",
		fmt.Sprintf("message containing %q", text), fmt.Sprintf("%q (%s)", outcome.Message, outcome.Verdict), nil)
}
