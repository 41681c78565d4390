package scenarios

import (
	"context"

	"bank_e2e/application/pages/login"
)

func init() {
	register("login/page-loads-idempotently",
		"Re-opening the login page always lands in the same initial state",
		loginPageLoadsIdempotently)
	register("login/customer-and-back-home",
		"Customer and manager logins reach their pages and Home returns to login",
		loginCustomerAndBackHome)
	register("login/dynamic-button-locator",
		"A button found by its name drives the same transition",
		loginDynamicButtonLocator)
}

func loginPageLoadsIdempotently(ctx context.Context, env *Env) error {
	lp := env.Login()

	for i := 0; i < 2; i++ {
		env.Log().Infof("Opening login page (%d)", i+1)
		if err := lp.Actions.Navigate(ctx); err != nil {
			return err
		}
		if err := lp.Validations.VerifyPageLoaded(ctx); err != nil {
			return err
		}
		if err := lp.Validations.VerifyAllButtonsVisible(ctx); err != nil {
			return err
		}
		// leave the initial state before re-opening
		if err := lp.Actions.ClickCustomerLogin(ctx); err != nil {
			return err
		}
	}
	return nil
}

func loginCustomerAndBackHome(ctx context.Context, env *Env) error {
	lp := env.Login()
	cp := env.Customer()
	mp := env.Manager()

	if err := lp.Actions.Navigate(ctx); err != nil {
		return err
	}

	env.Log().Info("Clicking customer login button")
	if err := lp.Actions.ClickCustomerLogin(ctx); err != nil {
		return err
	}
	if err := cp.Validations.VerifyCustomerSelectionPageLoaded(ctx); err != nil {
		return err
	}
	if err := lp.Validations.VerifyHomeButtonVisible(ctx); err != nil {
		return err
	}
	if err := lp.Actions.ClickHome(ctx); err != nil {
		return err
	}
	if err := lp.Validations.VerifyPageLoaded(ctx); err != nil {
		return err
	}

	env.Log().Info("Clicking bank manager login button")
	if err := lp.Actions.ClickBankManagerLogin(ctx); err != nil {
		return err
	}
	if err := mp.Validations.VerifyManagerPageLoaded(ctx); err != nil {
		return err
	}
	if err := mp.Actions.ClickHome(ctx); err != nil {
		return err
	}
	return lp.Validations.VerifyPageLoaded(ctx)
}

func loginDynamicButtonLocator(ctx context.Context, env *Env) error {
	lp := env.Login()
	if err := lp.Actions.Navigate(ctx); err != nil {
		return err
	}
	if err := lp.Actions.ClickButton(ctx, "Customer Login"); err != nil {
		return err
	}
	return lp.Actions.WaitForURL(ctx, login.CustomerURL)
}
