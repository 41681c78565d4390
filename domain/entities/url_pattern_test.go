package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bankURL = "https://www.globalsqa.com/angularJs-protractor/BankingProject/#/"

func TestURLPatternMatch(t *testing.T) {
	tests := []struct {
		pattern URLPattern
		url     string
		want    bool
	}{
		{Glob("**/login"), bankURL + "login", true},
		{Glob("**/login"), bankURL + "login/extra", false},
		{Glob("**/manager"), bankURL + "manager/addCust", false},
		{Glob("**/manager/*"), bankURL + "manager/addCust", true},
		{Glob("**/{customer,account}"), bankURL + "account", true},
		{Glob("**/accoun?"), bankURL + "account", true},
		{Glob("https://*/login"), bankURL + "login", false},
		{Regex(`.*#/account`), bankURL + "account", true},
		{Regex(`#/customer`), bankURL + "account", false},
	}

	for _, tt := range tests {
		got, err := tt.pattern.Match(tt.url)
		require.NoError(t, err, tt.pattern.String())
		assert.Equal(t, tt.want, got, "%s vs %s", tt.pattern, tt.url)
	}
}

func TestURLPatternErrors(t *testing.T) {
	_, err := URLPattern{}.Regexp()
	assert.Error(t, err)

	_, err = Regex("(").Match(bankURL)
	assert.Error(t, err)
}

func TestURLPatternString(t *testing.T) {
	assert.Equal(t, "**/login", Glob("**/login").String())
	assert.Equal(t, "/.*#/login/", Regex(".*#/login").String())
}
