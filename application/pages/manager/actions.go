package manager

import (
	"context"
	"fmt"
	"time"

	"bank_e2e/application/pages/base"
	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"
)

// dialogTimeout - how long a submission may take to raise its alert
const dialogTimeout = 5 * time.Second

var (
	AddCustomerURL = entities.Glob("**/manager/addCust")
	OpenAccountURL = entities.Glob("**/manager/openAccount")
	CustomersURL   = entities.Glob("**/manager/list")
)

type Actions struct {
	*base.Actions
	locators *Locators
	dialogs  interfaces.DialogClassifier
}

func NewActions(doc interfaces.Document, settings base.Settings) *Actions {
	a := &Actions{
		Actions:  base.NewActions(doc, settings),
		locators: NewLocators(doc),
	}
	a.dialogs = a.Settings().Dialogs
	return a
}

func (a *Actions) ClickAddCustomer(ctx context.Context) error {
	return a.ClickAndWait(ctx, a.locators.AddCustomerButton(), AddCustomerURL)
}

func (a *Actions) ClickOpenAccount(ctx context.Context) error {
	return a.ClickAndWait(ctx, a.locators.OpenAccountButton(), OpenAccountURL)
}

func (a *Actions) ClickCustomers(ctx context.Context) error {
	return a.ClickAndWait(ctx, a.locators.CustomersButton(), CustomersURL)
}

// FillCustomerForm - types the three fields of the add customer form
func (a *Actions) FillCustomerForm(ctx context.Context, c entities.ManagerCustomer) error {
	fields := []struct {
		el    interfaces.Element
		value string
	}{
		{a.locators.FirstNameInput(), c.FirstName},
		{a.locators.LastNameInput(), c.LastName},
		{a.locators.PostCodeInput(), c.PostCode},
	}
	for _, f := range fields {
		if err := a.Fill(ctx, f.el, f.value); err != nil {
			return err
		}
	}
	return nil
}

// SubmitAddCustomer - submits the form and accepts the alert it raises
func (a *Actions) SubmitAddCustomer(ctx context.Context) (entities.DialogOutcome, error) {
	return a.clickAcceptingDialog(ctx, a.locators.AddCustomerSubmitButton())
}

// AddNewCustomer - opens the form, fills and submits it
func (a *Actions) AddNewCustomer(ctx context.Context, firstName, lastName, postCode string) (entities.DialogOutcome, error) {
	a.Logger().Infof("Adding customer: %s %s", firstName, lastName)
	if err := a.ClickAddCustomer(ctx); err != nil {
		return entities.DialogOutcome{}, err
	}
	c := entities.ManagerCustomer{FirstName: firstName, LastName: lastName, PostCode: postCode}
	if err := a.FillCustomerForm(ctx, c); err != nil {
		return entities.DialogOutcome{}, err
	}
	return a.SubmitAddCustomer(ctx)
}

// OpenAccountForCustomer - opens an account for the customer named customerName
func (a *Actions) OpenAccountForCustomer(ctx context.Context, customerName, currency string) (entities.DialogOutcome, error) {
	a.Logger().Infof("Opening %s account for %s", currency, customerName)
	if err := a.ClickOpenAccount(ctx); err != nil {
		return entities.DialogOutcome{}, err
	}
	if err := a.locators.CustomerSelect().SelectByLabel(ctx, customerName); err != nil {
		return entities.DialogOutcome{}, fmt.Errorf("failed to select customer %s: %w", customerName, err)
	}
	return a.processAccount(ctx, currency)
}

// OpenAccountByIndex - same as OpenAccountForCustomer with the customer
// picked by option index; 0 is the placeholder option
func (a *Actions) OpenAccountByIndex(ctx context.Context, index int, currency string) (entities.DialogOutcome, error) {
	if err := a.ClickOpenAccount(ctx); err != nil {
		return entities.DialogOutcome{}, err
	}
	if err := a.locators.CustomerSelect().SelectByIndex(ctx, index); err != nil {
		return entities.DialogOutcome{}, fmt.Errorf("failed to select customer #%d: %w", index, err)
	}
	return a.processAccount(ctx, currency)
}

func (a *Actions) processAccount(ctx context.Context, currency string) (entities.DialogOutcome, error) {
	if err := a.locators.CurrencySelect().SelectByLabel(ctx, currency); err != nil {
		return entities.DialogOutcome{}, fmt.Errorf("failed to select currency %s: %w", currency, err)
	}
	return a.clickAcceptingDialog(ctx, a.locators.ProcessButton())
}

// SearchCustomer - filters the customers list
func (a *Actions) SearchCustomer(ctx context.Context, term string) error {
	return a.Fill(ctx, a.locators.SearchCustomerInput(), term)
}

// DeleteCustomer - deletes the row naming this customer
func (a *Actions) DeleteCustomer(ctx context.Context, firstName, lastName, postCode string) error {
	a.Logger().Infof("Deleting customer: %s %s (%s)", firstName, lastName, postCode)
	row := a.locators.CustomerRow(firstName, lastName, postCode)
	return a.Click(ctx, a.locators.DeleteButtonIn(row))
}

func (a *Actions) DeleteCustomerByIndex(ctx context.Context, index int) error {
	return a.Click(ctx, a.locators.DeleteButtonByIndex(index))
}

func (a *Actions) CustomerRowsCount(ctx context.Context) (int, error) {
	return a.locators.CustomerRows().Count(ctx)
}

// clickAcceptingDialog - registers a one-shot handler right before the click,
// accepts the dialog and reports what it said
func (a *Actions) clickAcceptingDialog(ctx context.Context, el interfaces.Element) (entities.DialogOutcome, error) {
	outcomes := make(chan entities.DialogOutcome, 1)
	cancel := a.Document().OnceDialog(func(d interfaces.Dialog) {
		outcome := a.classify(d)
		if err := d.Accept(); err != nil {
			a.Logger().Warnf("Failed to accept dialog: %v", err)
		}
		outcomes <- outcome
	})

	if err := a.Click(ctx, el); err != nil {
		cancel()
		return entities.DialogOutcome{}, err
	}

	timer := time.NewTimer(dialogTimeout)
	defer timer.Stop()

	select {
	case outcome := <-outcomes:
		a.Logger().Debugf("Dialog %q: %s", outcome.Message, outcome.Verdict)
		return outcome, nil
	case <-timer.C:
		cancel()
		return entities.DialogOutcome{}, entities.NewCheckError(entities.ErrStateTimeout,
			el.Selector().String(), "a dialog after the click", "no dialog", nil)
	case <-ctx.Done():
		cancel()
		return entities.DialogOutcome{}, ctx.Err()
	}
}

func (a *Actions) classify(d interfaces.Dialog) entities.DialogOutcome {
	if a.dialogs == nil {
		return entities.DialogOutcome{Type: d.Type(), Message: d.Message(), Verdict: entities.DialogUnknown}
	}
	return a.dialogs.Classify(d.Type(), d.Message())
}
