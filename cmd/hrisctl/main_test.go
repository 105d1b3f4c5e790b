package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()

	names := map[string]bool{}
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"migrate", "balance", "export", "payroll", "user"} {
		assert.True(t, names[want], "missing command %s", want)
	}

	upsert, _, err := root.Find([]string{"payroll", "upsert"})
	require.NoError(t, err)
	assert.Equal(t, "upsert", upsert.Name())
	for _, flag := range []string{"user", "month", "year", "base-salary", "deductions"} {
		assert.NotNil(t, upsert.Flags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestUserCreateCmd_Flags(t *testing.T) {
	root := newRootCmd()
	create, _, err := root.Find([]string{"user", "create"})
	require.NoError(t, err)
	assert.Equal(t, "create", create.Name())
	for _, flag := range []string{"email", "password", "employee-id", "name", "role"} {
		assert.NotNil(t, create.Flags().Lookup(flag), "missing flag %s", flag)
	}
	assert.Equal(t, "EMPLOYEE", create.Flags().Lookup("role").DefValue)
}

func TestBalanceCmd_RequiresUserID(t *testing.T) {
	root := newRootCmd()
	balance, _, err := root.Find([]string{"balance"})
	require.NoError(t, err)
	assert.Error(t, balance.Args(balance, nil))
	assert.NoError(t, balance.Args(balance, []string{"e1"}))
}

func TestOperator_IsAdmin(t *testing.T) {
	assert.True(t, operator.IsAdmin())
	assert.True(t, operator.IsAuthenticated())
}
