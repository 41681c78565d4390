package customer

import (
	"context"
	"strconv"
	"testing"

	"bank_e2e/application/pages/base"
	"bank_e2e/application/pages/pagetest"
	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// account is a scripted account page that keeps a running balance
type account struct {
	p       *Page
	doc     *pagetest.Document
	balance int
	amount  string
}

func newAccount(t *testing.T, balance int) *account {
	t.Helper()
	doc := pagetest.NewDocument()
	a := &account{p: NewPage(doc, base.Settings{}), doc: doc, balance: balance}
	l := a.p.Locators

	doc.SetURL(base.DefaultBaseURL + "customer")
	doc.Set(l.YourNameLabel(), pagetest.State{Text: "Your Name :"})
	doc.Set(l.UserSelect(), pagetest.State{Options: []string{"---Your Name---", "Hermoine Granger", "Harry Potter"}})
	doc.Set(l.LoginButton(), pagetest.State{Text: "Login"})
	doc.OnClick(l.LoginButton(), func() {
		doc.SetURL(base.DefaultBaseURL + "account")
		doc.Set(l.WelcomeMessage(), pagetest.State{Text: "Hermoine Granger"})
		doc.Set(l.AccountNumber(), pagetest.State{Text: "1001"})
		doc.Set(l.Currency(), pagetest.State{Text: "Dollar"})
		doc.Set(l.DepositButton(), pagetest.State{Text: "Deposit"})
		doc.Set(l.WithdrawalButton(), pagetest.State{Text: "Withdrawl"})
		doc.Set(l.TransactionsButton(), pagetest.State{Text: "Transactions"})
		doc.Set(l.LogoutButton(), pagetest.State{Text: "Logout"})
		a.showBalance()
	})
	doc.OnClick(l.LogoutButton(), func() { doc.SetURL(base.DefaultBaseURL + "customer") })

	doc.OnClick(l.DepositButton(), func() { a.openPanel(l.DepositLabel()) })
	doc.OnClick(l.WithdrawalButton(), func() { a.openPanel(l.WithdrawalLabel()) })
	doc.OnClick(l.DepositConfirmButton(), func() {
		text, err := l.AmountInput().Text(context.Background())
		require.NoError(t, err)
		n, err := strconv.Atoi(text)
		require.NoError(t, err)

		if a.visible(l.DepositLabel()) {
			a.balance += n
			a.message(DepositSuccessText)
		} else {
			a.balance -= n
			a.message(WithdrawalSuccessText)
		}
		a.showBalance()
	})
	return a
}

func (a *account) openPanel(label interfaces.Element) {
	l := a.p.Locators
	a.doc.Remove(l.DepositLabel())
	a.doc.Remove(l.WithdrawalLabel())
	a.doc.Remove(l.SuccessMessage())
	a.doc.Set(label, pagetest.State{Text: "label"})
	// the amount field keeps whatever was typed before
	if !a.visible(l.AmountInput()) {
		a.doc.Set(l.AmountInput(), pagetest.State{})
	}
	a.doc.Set(l.DepositConfirmButton(), pagetest.State{Text: "submit"})
}

func (a *account) message(text string) {
	a.doc.Set(a.p.Locators.SuccessMessage(), pagetest.State{Text: text})
}

func (a *account) showBalance() {
	a.doc.Set(a.p.Locators.Balance(), pagetest.State{Text: strconv.Itoa(a.balance)})
}

func (a *account) visible(el interfaces.Element) bool {
	return el.Expect(context.Background(), entities.Visible(), 0) == nil
}

func TestLoginAsShowsWelcome(t *testing.T) {
	ctx := context.Background()
	a := newAccount(t, 0)
	v := a.p.Validations

	require.NoError(t, v.VerifyCustomerSelectionPageLoaded(ctx))
	require.NoError(t, v.VerifyLoginButtonEnabled(ctx))
	require.NoError(t, a.p.Actions.LoginAs(ctx, "Hermoine Granger"))

	require.NoError(t, v.VerifyAccountPageLoaded(ctx))
	require.NoError(t, v.VerifyWelcomeMessageContains(ctx, "Hermoine Granger"))
	require.NoError(t, v.VerifyAccountNumberVisible(ctx))
	require.NoError(t, v.VerifyBalanceVisible(ctx))
	require.NoError(t, v.VerifyAllAccountButtonsVisible(ctx))
	require.NoError(t, v.VerifyCurrency(ctx, "Dollar"))

	err := v.VerifyWelcomeMessageContains(ctx, "Harry Potter")
	assert.ErrorIs(t, err, entities.ErrAssertionFailed)
}

func TestSelectUnknownUser(t *testing.T) {
	a := newAccount(t, 0)

	err := a.p.Actions.SelectUserByName(context.Background(), "Tom Riddle")
	assert.ErrorIs(t, err, entities.ErrElementNotFound)

	require.NoError(t, a.p.Actions.SelectUserByIndex(context.Background(), 2))
	assert.Contains(t, a.doc.Calls(), "select css=#userSelect Harry Potter")
}

func TestDepositUpdatesBalance(t *testing.T) {
	ctx := context.Background()
	a := newAccount(t, 100)
	require.NoError(t, a.p.Actions.LoginAs(ctx, "Hermoine Granger"))

	before, err := a.p.Actions.Balance(ctx)
	require.NoError(t, err)
	require.Equal(t, 100, before)

	require.NoError(t, a.p.Actions.PerformDeposit(ctx, 1000))
	require.NoError(t, a.p.Validations.VerifyDepositSuccessful(ctx))
	require.NoError(t, a.p.Validations.VerifyBalance(ctx, 1100))
}

func TestTransactionSequence(t *testing.T) {
	ctx := context.Background()
	a := newAccount(t, 0)
	act := a.p.Actions
	require.NoError(t, act.LoginAs(ctx, "Hermoine Granger"))

	for _, n := range []int{1000, 2000, 3000} {
		require.NoError(t, act.PerformDeposit(ctx, n))
		require.NoError(t, a.p.Validations.VerifyDepositSuccessful(ctx))
	}
	for _, n := range []int{500, 750, 1000} {
		require.NoError(t, act.PerformWithdrawal(ctx, n))
		require.NoError(t, a.p.Validations.VerifyWithdrawalSuccessful(ctx))
	}

	balance, err := act.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3750, balance)

	// withdrawals clear the field before typing
	assert.Contains(t, a.doc.Calls(), "clear "+pagetest.Key(a.p.Locators.AmountInput()))
}

func TestPanelMustOpen(t *testing.T) {
	ctx := context.Background()
	a := newAccount(t, 0)
	require.NoError(t, a.p.Actions.LoginAs(ctx, "Hermoine Granger"))
	a.doc.OnClick(a.p.Locators.DepositButton(), func() {})

	err := a.p.Actions.ClickDeposit(ctx)
	assert.ErrorIs(t, err, entities.ErrStateTimeout)
}

func TestWrongMessageFailsValidation(t *testing.T) {
	ctx := context.Background()
	a := newAccount(t, 0)
	require.NoError(t, a.p.Actions.LoginAs(ctx, "Hermoine Granger"))
	require.NoError(t, a.p.Actions.PerformDeposit(ctx, 10))

	err := a.p.Validations.VerifyWithdrawalSuccessful(ctx, base.WithTimeout(0))

	var ce *entities.CheckError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, `text "Transaction successful"`, ce.Expected)
	assert.Equal(t, `text "Deposit Successful"`, ce.Actual)
}

func TestBalanceParsing(t *testing.T) {
	ctx := context.Background()
	a := newAccount(t, 0)
	require.NoError(t, a.p.Actions.LoginAs(ctx, "Hermoine Granger"))

	a.doc.Set(a.p.Locators.Balance(), pagetest.State{Text: " 5096 "})
	n, err := a.p.Actions.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5096, n)

	a.doc.Set(a.p.Locators.Balance(), pagetest.State{Text: "n/a"})
	_, err = a.p.Actions.Balance(ctx)
	assert.Error(t, err)
}

func TestLogoutReturnsToSelection(t *testing.T) {
	ctx := context.Background()
	a := newAccount(t, 0)
	require.NoError(t, a.p.Actions.LoginAs(ctx, "Hermoine Granger"))

	require.NoError(t, a.p.Actions.ClickLogout(ctx))
	require.NoError(t, a.p.Validations.VerifyCustomerSelectionPageLoaded(ctx))
}

func TestTransactionRows(t *testing.T) {
	ctx := context.Background()
	doc := pagetest.NewDocument()
	p := NewPage(doc, base.Settings{})

	doc.Set(p.Locators.TransactionRows(), pagetest.State{Count: 6})
	doc.Set(p.Locators.TransactionRow(0), pagetest.State{Text: "Oct 18, 2026 1000 Credit"})

	n, err := p.Actions.TransactionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	require.NoError(t, p.Validations.VerifyTransactionCount(ctx, 6))
	require.NoError(t, p.Validations.Expect(ctx, p.Locators.TransactionRow(0), entities.ContainsText("Credit")))
	assert.Equal(t, "xpath=//strong[preceding-sibling::text()[1][contains(normalize-space(.), 'Balance')]]",
		pagetest.Key(p.Locators.AccountInfoByLabel("Balance")))
}
