package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/rentbook/internal/models"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "error")

	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "rentbook version dev\n", out)
}

func TestTokenRequiresSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	_, err := execute(t, "token")
	assert.ErrorContains(t, err, "AUTH_JWT_SECRET")
}

func TestTokenIsSignedWithSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	out, err := execute(t, "token", "--subject", "manager")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(strings.TrimSpace(out), claims, func(*jwt.Token) (any, error) {
		return []byte("s3cret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "manager", claims.Subject)
}

func TestStatsFromSeed(t *testing.T) {
	out, err := execute(t, "stats", "--json", "--seed", "../../internal/seed/testdata/lakeview.yaml")
	require.NoError(t, err)

	var stats models.DashboardStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats), out)
	assert.Equal(t, 2, stats.TotalProperties)
	assert.Equal(t, 2, stats.TotalRooms)
	assert.Equal(t, 1, stats.TotalTenants)
}

func TestSeedRequiresDatabase(t *testing.T) {
	_, err := execute(t, "seed", "../../internal/seed/testdata/lakeview.yaml")
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestMigrateDownRejectsZeroSteps(t *testing.T) {
	_, err := execute(t, "migrate", "down", "--steps", "0")
	assert.ErrorContains(t, err, "--steps")
}
