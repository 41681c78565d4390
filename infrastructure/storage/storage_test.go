package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bank_e2e/domain/entities"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedTestData(t *testing.T) {
	data, err := NewTestDataStore("").Load()
	require.NoError(t, err)

	name, err := data.Customer("hermoine_granger")
	require.NoError(t, err)
	assert.Equal(t, "Hermoine Granger", name)

	total := 0
	for _, key := range []string{"deposit_small", "deposit_medium", "deposit_large"} {
		n, err := data.Amount(key)
		require.NoError(t, err)
		total += n
	}
	for _, key := range []string{"withdrawal_small", "withdrawal_medium", "withdrawal_large"} {
		n, err := data.Amount(key)
		require.NoError(t, err)
		total -= n
	}
	assert.Equal(t, 3750, total)

	john, err := data.ManagerCustomer("john_doe")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", john.FullName())

	_, err = data.Currency("euro")
	assert.Error(t, err)
}

func TestTestDataLoadedOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"customers":{"a":"A B"},"amounts":{"x":1}}`), 0644))

	store := NewTestDataStore(path)
	first, err := store.Load()
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	second, err := store.Load()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestTestDataRejectsInvalidFixtures(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"negative.json": `{"customers":{"a":"A"},"amounts":{"x":-5}}`,
		"empty.json":    `{"customers":{}}`,
		"broken.json":   `{"customers":`,
		"partial.json":  `{"customers":{"a":"A"},"manager_customers":{"x":{"first_name":"X"}}}`,
	}
	for name, body := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		_, err := NewTestDataStore(path).Load()
		assert.Error(t, err, name)
	}

	_, err := NewTestDataStore(filepath.Join(dir, "missing.json")).Load()
	assert.Error(t, err)
}

func TestUniqueCustomer(t *testing.T) {
	faker := gofakeit.New(42)
	template := entities.ManagerCustomer{FirstName: "Jane", LastName: "Smith", PostCode: "W54321"}

	a := UniqueCustomer(faker, template)
	b := UniqueCustomer(faker, template)

	assert.Equal(t, "Jane", a.FirstName)
	assert.True(t, strings.HasPrefix(a.LastName, "Smith"))
	assert.True(t, strings.HasPrefix(a.PostCode, "W"))
	assert.Len(t, a.PostCode, 6)
	assert.NotEqual(t, a, b)
	assert.Equal(t, "Smith", template.LastName)
}

func TestResultStoreRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	store, err := NewResultStore(dir)
	require.NoError(t, err)

	empty, err := store.LoadReport()
	require.NoError(t, err)
	assert.Empty(t, empty.Results)

	report := entities.RunReport{
		StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Driver:    "playwright",
		Results: []entities.ScenarioResult{
			{Name: "customer/deposit-success", Status: entities.ScenarioStatusPassed},
			{Name: "manager/delete-customer", Status: entities.ScenarioStatusFailed, Kind: "assertion failed"},
		},
	}
	require.NoError(t, store.SaveReport(report))

	loaded, err := store.LoadReport()
	require.NoError(t, err)
	assert.Equal(t, report.Driver, loaded.Driver)
	assert.Equal(t, 1, loaded.Failed())
	assert.FileExists(t, filepath.Join(dir, "report.json"))
}
