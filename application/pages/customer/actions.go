package customer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bank_e2e/application/pages/base"
	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"

	"github.com/spf13/cast"
)

const (
	panelTimeout   = 3 * time.Second
	messageTimeout = 5 * time.Second
)

var (
	SelectionURL    = entities.Glob("**/customer")
	AccountURL      = entities.Glob("**/account")
	TransactionsURL = entities.Glob("**/listTx")
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

// SelectUserByName - picks the customer by visible label
func (a *Actions) SelectUserByName(ctx context.Context, name string) error {
	a.Logger().Debugf("Selecting user: %s", name)
	if err := a.locators.UserSelect().SelectByLabel(ctx, name); err != nil {
		return fmt.Errorf("failed to select user %s: %w", name, err)
	}
	return nil
}

// SelectUserByIndex - picks the customer by option index; 0 is the placeholder
func (a *Actions) SelectUserByIndex(ctx context.Context, index int) error {
	if err := a.locators.UserSelect().SelectByIndex(ctx, index); err != nil {
		return fmt.Errorf("failed to select user #%d: %w", index, err)
	}
	return nil
}

// ClickLogin - logs the selected customer in
func (a *Actions) ClickLogin(ctx context.Context) error {
	return a.ClickAndWait(ctx, a.locators.LoginButton(), AccountURL)
}

// ClickLogout - back to customer selection
func (a *Actions) ClickLogout(ctx context.Context) error {
	return a.ClickAndWait(ctx, a.locators.LogoutButton(), SelectionURL)
}

// LoginAs - select and log in
func (a *Actions) LoginAs(ctx context.Context, name string) error {
	if err := a.SelectUserByName(ctx, name); err != nil {
		return err
	}
	return a.ClickLogin(ctx)
}

// ClickDeposit - opens the deposit panel
func (a *Actions) ClickDeposit(ctx context.Context) error {
	return a.openPanel(ctx, a.locators.DepositButton(), a.locators.DepositLabel())
}

// ClickWithdrawal - opens the withdrawal panel
func (a *Actions) ClickWithdrawal(ctx context.Context) error {
	return a.openPanel(ctx, a.locators.WithdrawalButton(), a.locators.WithdrawalLabel())
}

func (a *Actions) openPanel(ctx context.Context, tab, label interfaces.Element) error {
	if err := a.Click(ctx, tab); err != nil {
		return err
	}
	if err := label.WaitVisible(ctx, panelTimeout); err != nil {
		return fmt.Errorf("panel did not open: %w", err)
	}
	return nil
}

func (a *Actions) FillDepositAmount(ctx context.Context, amount int) error {
	return a.Fill(ctx, a.locators.AmountInput(), strconv.Itoa(amount))
}

// FillWithdrawalAmount - clears first; the field may still hold a deposit
func (a *Actions) FillWithdrawalAmount(ctx context.Context, amount int) error {
	input := a.locators.AmountInput()
	if err := input.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear amount: %w", err)
	}
	return a.Fill(ctx, input, strconv.Itoa(amount))
}

func (a *Actions) ConfirmDeposit(ctx context.Context) error {
	return a.Click(ctx, a.locators.DepositConfirmButton())
}

func (a *Actions) ConfirmWithdrawal(ctx context.Context) error {
	return a.Click(ctx, a.locators.WithdrawConfirmButton())
}

// PerformDeposit - open panel, fill, confirm, wait for the message
func (a *Actions) PerformDeposit(ctx context.Context, amount int) error {
	a.Logger().Infof("Depositing %d", amount)
	if err := a.ClickDeposit(ctx); err != nil {
		return err
	}
	if err := a.FillDepositAmount(ctx, amount); err != nil {
		return err
	}
	if err := a.ConfirmDeposit(ctx); err != nil {
		return err
	}
	return a.waitForMessage(ctx)
}

// PerformWithdrawal - open panel, fill, confirm, wait for the message
func (a *Actions) PerformWithdrawal(ctx context.Context, amount int) error {
	a.Logger().Infof("Withdrawing %d", amount)
	if err := a.ClickWithdrawal(ctx); err != nil {
		return err
	}
	if err := a.FillWithdrawalAmount(ctx, amount); err != nil {
		return err
	}
	if err := a.ConfirmWithdrawal(ctx); err != nil {
		return err
	}
	return a.waitForMessage(ctx)
}

func (a *Actions) waitForMessage(ctx context.Context) error {
	if err := a.locators.SuccessMessage().WaitVisible(ctx, messageTimeout); err != nil {
		return fmt.Errorf("no transaction message: %w", err)
	}
	return nil
}

// ClickTransactions - opens the transaction list
func (a *Actions) ClickTransactions(ctx context.Context) error {
	return a.ClickAndWait(ctx, a.locators.TransactionsButton(), TransactionsURL)
}

// ClickBack - transaction list back to the account
func (a *Actions) ClickBack(ctx context.Context) error {
	return a.ClickAndWait(ctx, a.locators.BackButton(), AccountURL)
}

// SelectAccount - switches between the customer's accounts
func (a *Actions) SelectAccount(ctx context.Context, accountNumber string) error {
	if err := a.locators.AccountSelect().SelectByLabel(ctx, accountNumber); err != nil {
		return fmt.Errorf("failed to select account %s: %w", accountNumber, err)
	}
	return nil
}

// BalanceText - raw balance as shown
func (a *Actions) BalanceText(ctx context.Context) (string, error) {
	text, err := a.locators.Balance().Text(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read balance: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Balance - current balance as a number
func (a *Actions) Balance(ctx context.Context) (int, error) {
	text, err := a.BalanceText(ctx)
	if err != nil {
		return 0, err
	}
	balance, err := cast.ToIntE(text)
	if err != nil {
		return 0, fmt.Errorf("failed to parse balance %q: %w", text, err)
	}
	return balance, nil
}

// TransactionCount - rows currently in the transaction list
func (a *Actions) TransactionCount(ctx context.Context) (int, error) {
	return a.locators.TransactionRows().Count(ctx)
}
