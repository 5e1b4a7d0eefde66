package config

import "fmt"

// BusinessConfig holds the studio business rules. It is passed explicitly to
// every service constructor.
type BusinessConfig struct {
	PaymentDeadlineDays      int `env:"PAYMENT_DEADLINE_DAYS" envDefault:"5"`
	ChangesDeadlineDays      int `env:"CHANGES_DEADLINE_DAYS" envDefault:"7"`
	DefaultEditingDays       int `env:"DEFAULT_EDITING_DAYS" envDefault:"5"`
	DefaultDepositPercentage int `env:"DEFAULT_DEPOSIT_PERCENTAGE" envDefault:"50"`
}

// DefaultBusinessConfig returns the values used when nothing is configured.
func DefaultBusinessConfig() BusinessConfig {
	return BusinessConfig{
		PaymentDeadlineDays:      5,
		ChangesDeadlineDays:      7,
		DefaultEditingDays:       5,
		DefaultDepositPercentage: 50,
	}
}

func LoadBusinessConfig() (BusinessConfig, error) {
	var cfg BusinessConfig
	if err := ParseEnv(&cfg); err != nil {
		return BusinessConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BusinessConfig{}, err
	}
	return cfg, nil
}

func (c BusinessConfig) Validate() error {
	if c.PaymentDeadlineDays < 0 || c.ChangesDeadlineDays < 0 || c.DefaultEditingDays < 0 {
		return fmt.Errorf("invalid business config: day counts must not be negative")
	}
	if c.DefaultDepositPercentage < 0 || c.DefaultDepositPercentage > 100 {
		return fmt.Errorf("invalid business config: deposit percentage %d out of range 0..100", c.DefaultDepositPercentage)
	}
	return nil
}
