package io

import (
	"bytes"

	"github.com/waiteperspectives/eml/pkg/diagram"
)

const accountsTable = `| CustomerId | state |
|------------|-------|
| 123        | done  |
| 456        | todo  |
| 789        | todo  |`

// Demo returns a small but complete event model: a customer signs up, and
// two jobs react to the resulting event by creating an account and a user.
// It uses every node type, plain arrows and flows.
func Demo() diagram.Document {
	customer := []diagram.Field{
		{Name: "name", Value: "Bob"},
		{Name: "age", Value: "21"},
		{Name: "email", Value: "bob@example.com"},
	}
	return diagram.Document{
		{Key: "form", ID: "CustomerForm", Text: "sign up", Fields: customer},
		{Key: "command", ID: "AddCustomer", Fields: customer},
		{Key: "event", ID: "CustomerAdded", Fields: customer},
		{Key: "flow", Flow: []string{"CustomerForm", "AddCustomer", "CustomerAdded"}},

		{Key: "view", ID: "AccountsToAdd", Text: accountsTable},
		{Key: "job", ID: "ProcessAccountsToAdd"},
		{Key: "command", ID: "AddAccount", Fields: []diagram.Field{
			{Name: "CustomerId", Value: "123"},
			{Name: "Name", Value: "Bob"},
		}},
		{Key: "event", ID: "AccountAdded", Fields: []diagram.Field{
			{Name: "CustomerId", Value: "123"},
			{Name: "Name", Value: "Bob"},
		}},
		{Key: "arrow", BeginAt: "CustomerAdded", EndAt: "AccountsToAdd"},
		{Key: "flow", Flow: []string{"AccountsToAdd", "ProcessAccountsToAdd", "AddAccount", "AccountAdded"}},

		{Key: "view", ID: "UsersToAdd", Text: accountsTable},
		{Key: "job", ID: "ProcessUsersToAdd"},
		{Key: "command", ID: "AddUser", Fields: []diagram.Field{
			{Name: "Name", Value: "Bob"},
			{Name: "Login", Value: "Bob"},
		}},
		{Key: "event", ID: "UserAdded", Fields: []diagram.Field{
			{Name: "Name", Value: "Bob"},
			{Name: "Login", Value: "Bob"},
		}},
		{Key: "=>", BeginAt: "CustomerAdded", EndAt: "UsersToAdd"},
		{Key: "flow", Flow: []string{"UsersToAdd", "ProcessUsersToAdd", "AddUser", "UserAdded"}},
	}
}

// DemoYAML returns [Demo] encoded as YAML.
func DemoYAML() ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteYAML(Demo(), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
