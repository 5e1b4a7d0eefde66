package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBusinessConfig_Defaults(t *testing.T) {
	cfg, err := LoadBusinessConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != DefaultBusinessConfig() {
		t.Fatalf("env defaults differ from DefaultBusinessConfig: %+v", cfg)
	}
}

func TestLoadBusinessConfig_Env(t *testing.T) {
	t.Setenv("DEFAULT_DEPOSIT_PERCENTAGE", "30")
	t.Setenv("CHANGES_DEADLINE_DAYS", "3")

	cfg, err := LoadBusinessConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultDepositPercentage != 30 || cfg.ChangesDeadlineDays != 3 {
		t.Fatalf("env not applied: %+v", cfg)
	}

	t.Setenv("DEFAULT_DEPOSIT_PERCENTAGE", "120")
	if _, err := LoadBusinessConfig(); err == nil {
		t.Fatal("expected error for deposit percentage above 100")
	}
}

func TestDBConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     DBConfig
		wantErr bool
	}{
		{"postgres", DBConfig{Driver: DriverPostgres, Host: "db", User: "u", Name: "n"}, false},
		{"postgres without host", DBConfig{Driver: DriverPostgres, User: "u", Name: "n"}, true},
		{"sqlite", DBConfig{Driver: DriverSQLite, SQLitePath: "studio.db"}, false},
		{"sqlite without path", DBConfig{Driver: DriverSQLite}, true},
		{"unknown driver", DBConfig{Driver: "mysql"}, true},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		if (err != nil) != tc.wantErr {
			t.Fatalf("%s: wantErr=%v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing .env must be ignored: %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("GRPC_ADDR=:6000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GRPC_ADDR", "")
	os.Unsetenv("GRPC_ADDR")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load .env: %v", err)
	}
	cfg, err := LoadServerConfig()
	if err != nil {
		t.Fatalf("server config: %v", err)
	}
	if cfg.GRPCAddr != ":6000" {
		t.Fatalf("expected :6000 from .env, got %q", cfg.GRPCAddr)
	}
}
