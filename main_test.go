package main

import (
	"testing"

	"order-tracker/config"
	"order-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccounts(t *testing.T) {
	got := accounts(config.Config{AdminPassword: "a", UserPassword: "u"})
	require.Len(t, got, 2)
	assert.Equal(t, "admin", got[0].Username)
	assert.Equal(t, models.RoleAdmin, got[0].Role)
	assert.Equal(t, "a", got[0].Password)
	assert.Equal(t, "user", got[1].Username)
	assert.Equal(t, models.RoleUser, got[1].Role)
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "import", "export", "stats"} {
		assert.True(t, names[want], want)
	}
}
