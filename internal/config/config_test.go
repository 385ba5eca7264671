package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
database:
  host: "localhost"
  user: "sacco"
  database: "sacco_ledger"
jwt:
  secret: "test-secret"
`

func TestLoad_FillsDefaults(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	assert.Equal(t, 2.0, cfg.Ledger.DefaultInterestRate)
	assert.Equal(t, 2.0, cfg.Ledger.OverduePenaltyRate)
	assert.Equal(t, int64(1000), cfg.Ledger.WelfareWeeklyAmount)
	assert.Equal(t, int64(10000), cfg.Ledger.EligibilityMinWeeklyAmount)
	assert.Equal(t, int32(4), cfg.Ledger.EligibilityWeeks)
	assert.Equal(t, 28, cfg.Ledger.EligibilityWindowDays)

	assert.Equal(t, "0 0 6 * * MON", cfg.Scheduler.WeeklyWelfareDeduction)
	assert.Equal(t, "0 0 7 1 * *", cfg.Scheduler.ApplyOverdueInterest)
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	_, err := Load(writeConfigFile(t, `
database:
  host: "localhost"
  user: "sacco"
  database: "sacco_ledger"
`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("WELFARE_WEEKLY_AMOUNT", "2500")

	cfg, err := Load(writeConfigFile(t, minimalConfig))
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, int64(2500), cfg.Ledger.WelfareWeeklyAmount)
}

func TestGetDatabaseConnectionString(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, minimalConfig))
	require.NoError(t, err)
	assert.Equal(t, "postgres://sacco:@localhost:5432/sacco_ledger?sslmode=disable",
		cfg.GetDatabaseConnectionString())
}
