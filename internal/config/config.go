package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	JWT       JWTConfig       `yaml:"jwt"`
	Log       LogConfig       `yaml:"log"`
	Ledger    LedgerConfig    `yaml:"ledger"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// SendGridConfig contains outbound email settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// JWTConfig contains token validation settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// LedgerConfig contains the business constants of the ledger engine
type LedgerConfig struct {
	DefaultInterestRate        float64 `yaml:"default_interest_rate"`         // percent per month
	OverduePenaltyRate         float64 `yaml:"overdue_penalty_rate"`          // percent of principal per overdue month
	WelfareWeeklyAmount        int64   `yaml:"welfare_weekly_amount"`         // flat fee per account per week
	EligibilityMinWeeklyAmount int64   `yaml:"eligibility_min_weekly_amount"` // savings threshold per week
	EligibilityWeeks           int32   `yaml:"eligibility_weeks"`             // qualifying weeks required
	EligibilityWindowDays      int     `yaml:"eligibility_window_days"`       // trailing window length
}

// SchedulerConfig contains cron schedule settings (with-seconds specs, UTC)
type SchedulerConfig struct {
	WeeklyWelfareDeduction string `yaml:"weekly_welfare_deduction"`
	ApplyOverdueInterest   string `yaml:"apply_overdue_interest"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("WELFARE_WEEKLY_AMOUNT"); val != "" {
		if amount, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.Ledger.WelfareWeeklyAmount = amount
		}
	}
}

// Validate checks required fields and fills defaults
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}

	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Ledger.DefaultInterestRate == 0 {
		c.Ledger.DefaultInterestRate = 2.0
	}
	if c.Ledger.OverduePenaltyRate == 0 {
		c.Ledger.OverduePenaltyRate = 2.0
	}
	if c.Ledger.WelfareWeeklyAmount == 0 {
		c.Ledger.WelfareWeeklyAmount = 1000
	}
	if c.Ledger.EligibilityMinWeeklyAmount == 0 {
		c.Ledger.EligibilityMinWeeklyAmount = 10000
	}
	if c.Ledger.EligibilityWeeks == 0 {
		c.Ledger.EligibilityWeeks = 4
	}
	if c.Ledger.EligibilityWindowDays == 0 {
		c.Ledger.EligibilityWindowDays = 28
	}

	if c.Scheduler.WeeklyWelfareDeduction == "" {
		c.Scheduler.WeeklyWelfareDeduction = "0 0 6 * * MON" // Mondays at 6 AM UTC
	}
	if c.Scheduler.ApplyOverdueInterest == "" {
		c.Scheduler.ApplyOverdueInterest = "0 0 7 1 * *" // 1st of month at 7 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
