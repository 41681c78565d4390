package customer

import (
	"context"
	"strconv"

	"bank_e2e/application/pages/base"
	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"
)

const (
	DepositSuccessText    = "Deposit Successful"
	WithdrawalSuccessText = "Transaction successful"
)

var (
	selectionPage = entities.Regex(`.*#/customer`)
	accountPage   = entities.Regex(`.*#/account`)
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

func (v *Validations) VerifyCustomerSelectionPageLoaded(ctx context.Context, opts ...base.CheckOption) error {
	if err := v.ExpectURL(ctx, selectionPage, opts...); err != nil {
		return err
	}
	return v.ExpectAll(ctx, entities.Visible(), []interfaces.Element{
		v.locators.YourNameLabel(),
		v.locators.UserSelect(),
	}, opts...)
}

func (v *Validations) VerifyAccountPageLoaded(ctx context.Context, opts ...base.CheckOption) error {
	if err := v.ExpectURL(ctx, accountPage, opts...); err != nil {
		return err
	}
	return v.VerifyWelcomeMessageVisible(ctx, opts...)
}

func (v *Validations) VerifyWelcomeMessageVisible(ctx context.Context, opts ...base.CheckOption) error {
	return v.Expect(ctx, v.locators.WelcomeMessage(), entities.Visible(), opts...)
}

func (v *Validations) VerifyWelcomeMessageContains(ctx context.Context, name string, opts ...base.CheckOption) error {
	return v.Expect(ctx, v.locators.WelcomeMessage(), entities.ContainsText(name), opts...)
}

func (v *Validations) VerifyAccountNumberVisible(ctx context.Context, opts ...base.CheckOption) error {
	return v.Expect(ctx, v.locators.AccountNumber(), entities.Visible(), opts...)
}

func (v *Validations) VerifyBalanceVisible(ctx context.Context, opts ...base.CheckOption) error {
	return v.Expect(ctx, v.locators.Balance(), entities.Visible(), opts...)
}

// VerifyAllAccountButtonsVisible - Transactions, Deposit, Withdrawl
func (v *Validations) VerifyAllAccountButtonsVisible(ctx context.Context, opts ...base.CheckOption) error {
	return v.ExpectAll(ctx, entities.Visible(), []interfaces.Element{
		v.locators.TransactionsButton(),
		v.locators.DepositButton(),
		v.locators.WithdrawalButton(),
	}, opts...)
}

func (v *Validations) VerifyDepositSuccessful(ctx context.Context, opts ...base.CheckOption) error {
	return v.verifyMessage(ctx, DepositSuccessText, opts)
}

func (v *Validations) VerifyWithdrawalSuccessful(ctx context.Context, opts ...base.CheckOption) error {
	return v.verifyMessage(ctx, WithdrawalSuccessText, opts)
}

func (v *Validations) verifyMessage(ctx context.Context, text string, opts []base.CheckOption) error {
	msg := v.locators.SuccessMessage()
	if err := msg.WaitVisible(ctx, base.Timeout(messageTimeout, opts)); err != nil {
		return err
	}
	return v.Expect(ctx, msg, entities.HasText(text), opts...)
}

// VerifyBalance - the balance shows exactly n
func (v *Validations) VerifyBalance(ctx context.Context, n int, opts ...base.CheckOption) error {
	return v.Expect(ctx, v.locators.Balance(), entities.HasText(strconv.Itoa(n)), opts...)
}

func (v *Validations) VerifyCurrency(ctx context.Context, currency string, opts ...base.CheckOption) error {
	return v.Expect(ctx, v.locators.Currency(), entities.HasText(currency), opts...)
}

func (v *Validations) VerifyTransactionCount(ctx context.Context, n int, opts ...base.CheckOption) error {
	return v.Expect(ctx, v.locators.TransactionRows(), entities.HasCount(n), opts...)
}

func (v *Validations) VerifyLoginButtonEnabled(ctx context.Context, opts ...base.CheckOption) error {
	return v.Expect(ctx, v.locators.LoginButton(), entities.Enabled(), opts...)
}
