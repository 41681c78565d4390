package entities

import "fmt"

// ManagerCustomer is a template for a customer the bank manager creates
type ManagerCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	PostCode  string `json:"postcode"`
}

// FullName is the label the app uses in customer dropdowns
func (c ManagerCustomer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// TestData holds the static fixtures shared by every scenario. It is loaded
// once and must not be modified afterwards.
type TestData struct {
	Customers        map[string]string          `json:"customers"`
	Amounts          map[string]int             `json:"amounts"`
	Currencies       map[string]string          `json:"currencies"`
	ManagerCustomers map[string]ManagerCustomer `json:"manager_customers"`
}

// Customer - seeded customer display name by key
func (d *TestData) Customer(key string) (string, error) {
	name, ok := d.Customers[key]
	if !ok {
		return "", fmt.Errorf("unknown customer %q in test data", key)
	}
	return name, nil
}

// Amount - transaction amount by key
func (d *TestData) Amount(key string) (int, error) {
	amount, ok := d.Amounts[key]
	if !ok {
		return 0, fmt.Errorf("unknown amount %q in test data", key)
	}
	return amount, nil
}

// Currency - currency label by key
func (d *TestData) Currency(key string) (string, error) {
	currency, ok := d.Currencies[key]
	if !ok {
		return "", fmt.Errorf("unknown currency %q in test data", key)
	}
	return currency, nil
}

// ManagerCustomer - customer template by key
func (d *TestData) ManagerCustomer(key string) (ManagerCustomer, error) {
	c, ok := d.ManagerCustomers[key]
	if !ok {
		return ManagerCustomer{}, fmt.Errorf("unknown manager customer %q in test data", key)
	}
	return c, nil
}

// Validate checks the fixture file for values the app would reject
func (d *TestData) Validate() error {
	if len(d.Customers) == 0 {
		return fmt.Errorf("test data has no customers")
	}
	for key, amount := range d.Amounts {
		if amount <= 0 {
			return fmt.Errorf("amount %q must be positive, got %d", key, amount)
		}
	}
	for key, c := range d.ManagerCustomers {
		if c.FirstName == "" || c.LastName == "" || c.PostCode == "" {
			return fmt.Errorf("manager customer %q is incomplete", key)
		}
	}
	return nil
}
