package scenarios

import (
	"context"
	"fmt"
	"time"

	"bank_e2e/application/pages/base"
	"bank_e2e/application/pages/customer"
	"bank_e2e/domain/entities"
)

func init() {
	register("customer/welcome-message",
		"Logging in shows the customer's name on the account page",
		customerWelcomeMessage)
	register("customer/deposit-success",
		"A deposit shows \"Deposit Successful\"",
		customerDepositSuccess)
	register("customer/withdrawal-success",
		"A covered withdrawal shows \"Transaction successful\"",
		customerWithdrawalSuccess)
	register("customer/balance-after-transactions",
		"Three deposits and three withdrawals move the balance by their sum",
		customerBalanceAfterTransactions)
	register("customer/deposit-updates-balance",
		"Balance grows by a deposit and shrinks by a withdrawal",
		customerDepositUpdatesBalance)
	register("customer/new-structure-account-page",
		"Login page, customer selection and account page all render their controls",
		customerAccountPage)
	register("customer/logout",
		"Logout returns to customer selection",
		customerLogout)
	register("customer/transactions-list",
		"A deposit is listed among the account's transactions",
		customerTransactionsList)
}

// loginCustomer - login page to the account page of the fixture customer key
func loginCustomer(ctx context.Context, env *Env, key string) (*customer.Page, string, error) {
	name, err := env.Data.Customer(key)
	if err != nil {
		return nil, "", err
	}

	lp := env.Login()
	cp := env.Customer()

	env.Log().Info("Navigating to application")
	if err := lp.Actions.Navigate(ctx); err != nil {
		return nil, "", err
	}
	if err := lp.Actions.ClickCustomerLogin(ctx); err != nil {
		return nil, "", err
	}
	env.Log().Infof("Selecting user: %s", name)
	if err := cp.Actions.LoginAs(ctx, name); err != nil {
		return nil, "", err
	}
	return cp, name, nil
}

func customerWelcomeMessage(ctx context.Context, env *Env) error {
	cp, name, err := loginCustomer(ctx, env, "harry_potter")
	if err != nil {
		return err
	}
	if err := cp.Validations.VerifyAccountPageLoaded(ctx); err != nil {
		return err
	}
	return cp.Validations.VerifyWelcomeMessageContains(ctx, name)
}

func customerDepositSuccess(ctx context.Context, env *Env) error {
	cp, _, err := loginCustomer(ctx, env, "hermoine_granger")
	if err != nil {
		return err
	}
	amount, err := env.Data.Amount("deposit_small")
	if err != nil {
		return err
	}

	if err := cp.Actions.ClickDeposit(ctx); err != nil {
		return err
	}
	if err := cp.Actions.FillDepositAmount(ctx, amount); err != nil {
		return err
	}
	if err := cp.Actions.ConfirmDeposit(ctx); err != nil {
		return err
	}
	return cp.Validations.VerifyDepositSuccessful(ctx)
}

func customerWithdrawalSuccess(ctx context.Context, env *Env) error {
	cp, _, err := loginCustomer(ctx, env, "hermoine_granger")
	if err != nil {
		return err
	}
	deposit, err := env.Data.Amount("deposit_xlarge")
	if err != nil {
		return err
	}
	withdrawal, err := env.Data.Amount("withdrawal_large")
	if err != nil {
		return err
	}

	env.Log().Infof("Depositing %d first", deposit)
	if err := cp.Actions.PerformDeposit(ctx, deposit); err != nil {
		return err
	}

	if err := cp.Actions.ClickWithdrawal(ctx); err != nil {
		return err
	}
	if err := cp.Actions.FillWithdrawalAmount(ctx, withdrawal); err != nil {
		return err
	}
	if err := cp.Actions.ConfirmWithdrawal(ctx); err != nil {
		return err
	}
	return cp.Validations.VerifyWithdrawalSuccessful(ctx)
}

func customerBalanceAfterTransactions(ctx context.Context, env *Env) error {
	cp, _, err := loginCustomer(ctx, env, "hermoine_granger")
	if err != nil {
		return err
	}

	deposits, err := amounts(env.Data, "deposit_small", "deposit_medium", "deposit_large")
	if err != nil {
		return err
	}
	withdrawals, err := amounts(env.Data, "withdrawal_small", "withdrawal_medium", "withdrawal_large")
	if err != nil {
		return err
	}

	initial, err := cp.Actions.Balance(ctx)
	if err != nil {
		return err
	}
	env.Log().Infof("Initial balance: %d", initial)

	expected := 0
	for _, d := range deposits {
		if err := cp.Actions.PerformDeposit(ctx, d); err != nil {
			return err
		}
		if err := cp.Validations.VerifyDepositSuccessful(ctx); err != nil {
			return err
		}
		expected += d
	}
	for _, w := range withdrawals {
		if err := cp.Actions.PerformWithdrawal(ctx, w); err != nil {
			return err
		}
		if err := cp.Validations.VerifyWithdrawalSuccessful(ctx); err != nil {
			return err
		}
		expected -= w
	}

	final, err := cp.Actions.Balance(ctx)
	if err != nil {
		return err
	}
	env.Log().Infof("Final balance: %d, expected change %d", final, expected)

	if change := final - initial; change != expected {
		return entities.NewCheckError(entities.ErrAssertionFailed, "balance change",
			fmt.Sprintf("%+d", expected), fmt.Sprintf("%+d", change), nil)
	}
	return nil
}

func customerDepositUpdatesBalance(ctx context.Context, env *Env) error {
	cp, _, err := loginCustomer(ctx, env, "ron_weasly")
	if err != nil {
		return err
	}
	deposit, err := env.Data.Amount("deposit_medium")
	if err != nil {
		return err
	}
	withdrawal, err := env.Data.Amount("withdrawal_medium")
	if err != nil {
		return err
	}

	before, err := cp.Actions.Balance(ctx)
	if err != nil {
		return err
	}

	if err := cp.Actions.PerformDeposit(ctx, deposit); err != nil {
		return err
	}
	if err := cp.Validations.VerifyDepositSuccessful(ctx); err != nil {
		return err
	}
	if err := cp.Validations.VerifyBalance(ctx, before+deposit); err != nil {
		return err
	}

	if err := cp.Actions.PerformWithdrawal(ctx, withdrawal); err != nil {
		return err
	}
	if err := cp.Validations.VerifyWithdrawalSuccessful(ctx); err != nil {
		return err
	}
	return cp.Validations.VerifyBalance(ctx, before+deposit-withdrawal)
}

func customerAccountPage(ctx context.Context, env *Env) error {
	lp := env.Login()
	cp := env.Customer()

	if err := lp.Actions.Navigate(ctx); err != nil {
		return err
	}
	if err := lp.Validations.VerifyPageLoaded(ctx); err != nil {
		return err
	}
	if err := lp.Validations.VerifyAllButtonsVisible(ctx); err != nil {
		return err
	}
	if err := lp.Actions.ClickCustomerLogin(ctx); err != nil {
		return err
	}
	if err := cp.Validations.VerifyCustomerSelectionPageLoaded(ctx); err != nil {
		return err
	}

	name, err := env.Data.Customer("hermoine_granger")
	if err != nil {
		return err
	}
	if err := cp.Actions.LoginAs(ctx, name); err != nil {
		return err
	}

	checks := []func(context.Context, ...base.CheckOption) error{
		cp.Validations.VerifyAccountPageLoaded,
		cp.Validations.VerifyWelcomeMessageVisible,
		cp.Validations.VerifyAccountNumberVisible,
		cp.Validations.VerifyBalanceVisible,
		cp.Validations.VerifyAllAccountButtonsVisible,
		cp.Validations.VerifyLogoutButtonVisible,
	}
	for _, check := range checks {
		if err := check(ctx); err != nil {
			return err
		}
	}
	return nil
}

func customerLogout(ctx context.Context, env *Env) error {
	cp, _, err := loginCustomer(ctx, env, "neville_longbottom")
	if err != nil {
		return err
	}
	if err := cp.Actions.ClickLogout(ctx); err != nil {
		return err
	}
	return cp.Validations.VerifyCustomerSelectionPageLoaded(ctx)
}

func customerTransactionsList(ctx context.Context, env *Env) error {
	cp, _, err := loginCustomer(ctx, env, "albus_dumbledore")
	if err != nil {
		return err
	}
	amount, err := env.Data.Amount("deposit_large")
	if err != nil {
		return err
	}

	if err := cp.Actions.PerformDeposit(ctx, amount); err != nil {
		return err
	}
	if err := cp.Actions.ClickTransactions(ctx); err != nil {
		return err
	}
	if err := cp.Validations.Expect(ctx, cp.Locators.TransactionsTable(), entities.Visible()); err != nil {
		return err
	}
	// the list shows new transactions only after the app's one second tick
	row := cp.Locators.Locate(entities.RowContaining(fmt.Sprint(amount), "Credit"))
	if err := cp.Validations.Expect(ctx, row.First(), entities.Visible(), base.WithTimeout(10*time.Second)); err != nil {
		return err
	}
	return cp.Actions.ClickBack(ctx)
}

func amounts(data *entities.TestData, keys ...string) ([]int, error) {
	out := make([]int, 0, len(keys))
	for _, k := range keys {
		n, err := data.Amount(k)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
