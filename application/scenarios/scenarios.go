// Package scenarios holds the business workflows of the suite. Every
// scenario starts from a fresh document and establishes its own state.
package scenarios

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"bank_e2e/application/pages/base"
	"bank_e2e/application/pages/customer"
	"bank_e2e/application/pages/login"
	"bank_e2e/application/pages/manager"
	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"
)

// Env is everything one scenario run may touch
type Env struct {
	Doc      interfaces.Document
	Settings base.Settings
	Data     *entities.TestData
	Faker    *gofakeit.Faker
}

func (e *Env) Log() *logrus.Entry {
	if e.Settings.Logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return e.Settings.Logger
}

func (e *Env) Login() *login.Page {
	return login.NewPage(e.Doc, e.Settings)
}

func (e *Env) Customer() *customer.Page {
	return customer.NewPage(e.Doc, e.Settings)
}

func (e *Env) Manager() *manager.Page {
	return manager.NewPage(e.Doc, e.Settings)
}

// Func is a scenario body
type Func func(ctx context.Context, env *Env) error

type Scenario struct {
	Name        string
	Description string
	Run         Func
}

var registry = map[string]Scenario{}

func register(name, description string, run Func) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("scenario %s registered twice", name))
	}
	registry[name] = Scenario{Name: name, Description: description, Run: run}
}

// All returns every scenario ordered by name
func All() []Scenario {
	all := make([]Scenario, 0, len(registry))
	for _, s := range registry {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

// Get looks a scenario up by its exact name
func Get(name string) (Scenario, bool) {
	s, ok := registry[name]
	return s, ok
}

// Match returns the scenarios whose name matches expr; empty expr selects all
func Match(expr string) ([]Scenario, error) {
	if expr == "" {
		return All(), nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario filter %q: %w", expr, err)
	}
	var matched []Scenario
	for _, s := range All() {
		if re.MatchString(s.Name) {
			matched = append(matched, s)
		}
	}
	return matched, nil
}
