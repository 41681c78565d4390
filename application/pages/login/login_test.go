package login

import (
	"context"
	"testing"

	"bank_e2e/application/pages/base"
	"bank_e2e/application/pages/pagetest"
	"bank_e2e/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoginPage() (*Page, *pagetest.Document) {
	doc := pagetest.NewDocument()
	p := NewPage(doc, base.Settings{})

	doc.OnGoto(base.DefaultBaseURL+"login", func() {
		doc.SetTitle(Title)
		doc.Set(p.Locators.CustomerLoginButton(), pagetest.State{Text: "Customer Login"})
		doc.Set(p.Locators.BankManagerLoginButton(), pagetest.State{Text: "Bank Manager Login"})
		doc.Set(p.Locators.HomeButton(), pagetest.State{Text: "Home"})
	})
	doc.OnClick(p.Locators.CustomerLoginButton(), func() { doc.SetURL(base.DefaultBaseURL + "customer") })
	doc.OnClick(p.Locators.BankManagerLoginButton(), func() { doc.SetURL(base.DefaultBaseURL + "manager") })
	doc.OnClick(p.Locators.HomeButton(), func() { doc.SetURL(base.DefaultBaseURL + "login") })
	return p, doc
}

func TestNavigateReachesLoggedOutState(t *testing.T) {
	ctx := context.Background()
	p, doc := newLoginPage()

	require.NoError(t, p.Actions.Navigate(ctx))
	require.NoError(t, p.Validations.VerifyPageLoaded(ctx))
	require.NoError(t, p.Validations.VerifyAllButtonsVisible(ctx))

	assert.Equal(t, []string{"goto " + base.DefaultBaseURL + "login"}, doc.Calls())
}

func TestLoginTransitions(t *testing.T) {
	ctx := context.Background()
	p, doc := newLoginPage()
	require.NoError(t, p.Actions.Navigate(ctx))

	require.NoError(t, p.Actions.ClickCustomerLogin(ctx))
	assert.Equal(t, base.DefaultBaseURL+"customer", doc.URL())

	require.NoError(t, p.Actions.ClickHome(ctx))
	require.NoError(t, p.Validations.VerifyPageLoaded(ctx))

	require.NoError(t, p.Actions.ClickBankManagerLogin(ctx))
	require.NoError(t, p.Validations.VerifyURLContains(ctx, "manager"))
}

func TestClickWaitsForDestination(t *testing.T) {
	ctx := context.Background()
	p, doc := newLoginPage()
	require.NoError(t, p.Actions.Navigate(ctx))

	// the click lands but the app never routes
	doc.OnClick(p.Locators.CustomerLoginButton(), func() {})

	err := p.Actions.ClickCustomerLogin(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrNavigationTimeout)
}

func TestButtonByName(t *testing.T) {
	ctx := context.Background()
	p, _ := newLoginPage()
	require.NoError(t, p.Actions.Navigate(ctx))

	require.NoError(t, p.Actions.ClickButton(ctx, "Customer Login"))
	require.NoError(t, p.Actions.WaitForURL(ctx, CustomerURL))

	err := p.Actions.ClickButton(ctx, "Open Sesame")
	assert.ErrorIs(t, err, entities.ErrElementNotFound)
	assert.Equal(t, pagetest.Key(p.Locators.ButtonByName("Customer Login")), pagetest.Key(p.Locators.CustomerLoginButton()))
}

func TestVerifyPageLoadedReportsTitle(t *testing.T) {
	ctx := context.Background()
	p, doc := newLoginPage()
	require.NoError(t, p.Actions.Navigate(ctx))
	doc.SetTitle("Protractor practice website - Banking App")

	err := p.Validations.VerifyPageLoaded(ctx)

	var ce *entities.CheckError
	require.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, entities.ErrAssertionFailed)
	assert.Equal(t, `"XYZ Bank"`, ce.Expected)
}
