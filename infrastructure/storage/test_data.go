package storage

import (
	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
)

//go:embed testdata/test_data.json
var embeddedTestData []byte

type testDataStore struct {
	path string
	once sync.Once
	data *entities.TestData
	err  error
}

// NewTestDataStore - creates a fixture store reading path, or the embedded
// fixtures when path is empty
func NewTestDataStore(path string) interfaces.TestDataStore {
	return &testDataStore{path: path}
}

// Load - parses the fixtures on first call and returns the same value after
func (s *testDataStore) Load() (*entities.TestData, error) {
	s.once.Do(func() {
		raw := embeddedTestData
		if s.path != "" {
			data, err := os.ReadFile(s.path)
			if err != nil {
				s.err = fmt.Errorf("failed to read test data: %w", err)
				return
			}
			raw = data
		}

		var data entities.TestData
		if err := json.Unmarshal(raw, &data); err != nil {
			s.err = fmt.Errorf("failed to parse test data: %w", err)
			return
		}
		if err := data.Validate(); err != nil {
			s.err = fmt.Errorf("invalid test data: %w", err)
			return
		}
		s.data = &data
	})
	return s.data, s.err
}

// UniqueCustomer - copies a template and makes it unique for this run so
// rows created by concurrent scenarios never collide
func UniqueCustomer(faker *gofakeit.Faker, template entities.ManagerCustomer) entities.ManagerCustomer {
	c := template
	c.LastName = fmt.Sprintf("%s%s", template.LastName, faker.LetterN(4))
	c.PostCode = fmt.Sprintf("%s%s", template.PostCode[:1], faker.DigitN(5))
	return c
}
