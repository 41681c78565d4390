package scenarios

import (
	"context"

	"bank_e2e/application/pages/manager"
	"bank_e2e/domain/entities"
	"bank_e2e/infrastructure/storage"
)

func init() {
	register("manager/actions-visible",
		"Bank manager login shows the three manager actions",
		managerActionsVisible)
	register("manager/add-customer-listed-without-account",
		"A new customer is listed with an empty account number",
		managerAddCustomer)
	register("manager/open-account-number-assigned",
		"Opening an account fills the customer's account number",
		managerOpenAccount)
	register("manager/delete-customer",
		"A deleted customer's row is gone from the table",
		managerDeleteCustomer)
	register("manager/search-customer",
		"Searching by last name narrows the table to that customer",
		managerSearchCustomer)
	register("manager/open-account-by-index",
		"An account can be opened for a customer picked by list position",
		managerOpenAccountByIndex)
}

// loginManager - login page to the manager home page
func loginManager(ctx context.Context, env *Env) (*manager.Page, error) {
	lp := env.Login()
	env.Log().Info("Navigating to application")
	if err := lp.Actions.Navigate(ctx); err != nil {
		return nil, err
	}
	env.Log().Info("Clicking Bank Manager login button")
	if err := lp.Actions.ClickBankManagerLogin(ctx); err != nil {
		return nil, err
	}
	return env.Manager(), nil
}

// newCustomer - a per-run copy of a fixture so parallel runs never share rows
func newCustomer(env *Env, key string) (entities.ManagerCustomer, error) {
	template, err := env.Data.ManagerCustomer(key)
	if err != nil {
		return entities.ManagerCustomer{}, err
	}
	if env.Faker == nil {
		return template, nil
	}
	return storage.UniqueCustomer(env.Faker, template), nil
}

// addCustomer - adds c and checks the app confirmed it
func addCustomer(ctx context.Context, mp *manager.Page, c entities.ManagerCustomer) error {
	outcome, err := mp.Actions.AddNewCustomer(ctx, c.FirstName, c.LastName, c.PostCode)
	if err != nil {
		return err
	}
	return mp.Validations.VerifyCustomerAdded(outcome)
}

func managerActionsVisible(ctx context.Context, env *Env) error {
	mp, err := loginManager(ctx, env)
	if err != nil {
		return err
	}
	return mp.Validations.VerifyManagerPageLoaded(ctx)
}

func managerAddCustomer(ctx context.Context, env *Env) error {
	mp, err := loginManager(ctx, env)
	if err != nil {
		return err
	}
	c, err := newCustomer(env, "john_doe")
	if err != nil {
		return err
	}

	if err := addCustomer(ctx, mp, c); err != nil {
		return err
	}
	if err := mp.Actions.ClickCustomers(ctx); err != nil {
		return err
	}
	if err := mp.Validations.VerifyCustomerInTable(ctx, c.FirstName, c.LastName); err != nil {
		return err
	}
	return mp.Validations.VerifyCustomerHasNoAccount(ctx, c.FirstName, c.LastName)
}

func managerOpenAccount(ctx context.Context, env *Env) error {
	mp, err := loginManager(ctx, env)
	if err != nil {
		return err
	}
	c, err := newCustomer(env, "jane_smith")
	if err != nil {
		return err
	}
	currency, err := env.Data.Currency("dollar")
	if err != nil {
		return err
	}

	if err := addCustomer(ctx, mp, c); err != nil {
		return err
	}
	outcome, err := mp.Actions.OpenAccountForCustomer(ctx, c.FullName(), currency)
	if err != nil {
		return err
	}
	if err := mp.Validations.VerifyAccountCreated(outcome); err != nil {
		return err
	}

	if err := mp.Actions.ClickCustomers(ctx); err != nil {
		return err
	}
	if err := mp.Validations.VerifyCustomerHasAccount(ctx, c.FirstName, c.LastName); err != nil {
		return err
	}
	if outcome.ID == "" {
		return nil
	}
	cell := mp.Locators.AccountNumberCell(mp.Locators.CustomerRow(c.FirstName, c.LastName, c.PostCode))
	return mp.Validations.Expect(ctx, cell, entities.ContainsText(outcome.ID))
}

func managerDeleteCustomer(ctx context.Context, env *Env) error {
	mp, err := loginManager(ctx, env)
	if err != nil {
		return err
	}
	c, err := newCustomer(env, "delete_test")
	if err != nil {
		return err
	}

	if err := addCustomer(ctx, mp, c); err != nil {
		return err
	}
	if err := mp.Actions.ClickCustomers(ctx); err != nil {
		return err
	}
	if err := mp.Validations.VerifyCustomerInTable(ctx, c.FirstName, c.LastName); err != nil {
		return err
	}
	if err := mp.Actions.DeleteCustomer(ctx, c.FirstName, c.LastName, c.PostCode); err != nil {
		return err
	}
	return mp.Validations.VerifyCustomerNotInTable(ctx, c.FirstName, c.LastName, c.PostCode)
}

func managerSearchCustomer(ctx context.Context, env *Env) error {
	mp, err := loginManager(ctx, env)
	if err != nil {
		return err
	}
	c, err := newCustomer(env, "john_doe")
	if err != nil {
		return err
	}

	if err := addCustomer(ctx, mp, c); err != nil {
		return err
	}
	if err := mp.Actions.ClickCustomers(ctx); err != nil {
		return err
	}
	if err := mp.Actions.SearchCustomer(ctx, c.LastName); err != nil {
		return err
	}
	if err := mp.Validations.VerifyCustomerCount(ctx, 1); err != nil {
		return err
	}
	return mp.Validations.VerifyCustomerInTable(ctx, c.FirstName, c.LastName)
}

func managerOpenAccountByIndex(ctx context.Context, env *Env) error {
	mp, err := loginManager(ctx, env)
	if err != nil {
		return err
	}
	currency, err := env.Data.Currency("pound")
	if err != nil {
		return err
	}

	// index 0 is the "---Customer Name---" placeholder
	outcome, err := mp.Actions.OpenAccountByIndex(ctx, 1, currency)
	if err != nil {
		return err
	}
	return mp.Validations.VerifyAccountCreated(outcome)
}
