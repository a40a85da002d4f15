package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	// Set required environment variables
	os.Setenv("DB_PASSWORD", "test_password")
	os.Setenv("JWT_SECRET_KEY", "this_is_a_test_secret_key_with_32_chars_minimum")
	defer func() {
		os.Unsetenv("DB_PASSWORD")
		os.Unsetenv("JWT_SECRET_KEY")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DBPassword != "test_password" {
		t.Errorf("DBPassword = %q, want %q", cfg.DBPassword, "test_password")
	}

	if cfg.ActiveDebateSeconds != 60 {
		t.Errorf("ActiveDebateSeconds = %d, want 60", cfg.ActiveDebateSeconds)
	}

	if cfg.VotingWindowSeconds != 60 {
		t.Errorf("VotingWindowSeconds = %d, want 60", cfg.VotingWindowSeconds)
	}

	if cfg.ToxicityThreshold != 0.8 {
		t.Errorf("ToxicityThreshold = %v, want 0.8", cfg.ToxicityThreshold)
	}
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "Missing DB_PASSWORD",
			envVars: map[string]string{
				"JWT_SECRET_KEY": "this_is_a_test_secret_key_with_32_chars_minimum",
			},
		},
		{
			name: "Missing JWT_SECRET_KEY",
			envVars: map[string]string{
				"DB_PASSWORD": "password",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear all env vars
			os.Clearenv()

			// Set only the provided env vars
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			_, err := LoadConfig()
			if err == nil {
				t.Error("LoadConfig() expected error for missing required field, got nil")
			}
		})
	}
}

func TestValidate_JWTSecretTooShort(t *testing.T) {
	cfg := &Config{
		DBPassword:          "password",
		JWTSecret:           "short", // Less than 32 chars
		ActiveDebateSeconds: 60,
		VotingWindowSeconds: 60,
		ToxicityThreshold:   0.8,
	}

	err := cfg.Validate()
	if err == nil {
		t.Error("Validate() expected error for short JWT secret, got nil")
	}
}

func TestValidate_BadWindows(t *testing.T) {
	tests := []struct {
		name   string
		active int
		voting int
	}{
		{
			name:   "Zero active duration",
			active: 0,
			voting: 60,
		},
		{
			name:   "Negative voting window",
			active: 60,
			voting: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				DBPassword:          "password",
				JWTSecret:           "this_is_a_test_secret_key_with_32_chars_minimum",
				ActiveDebateSeconds: tt.active,
				VotingWindowSeconds: tt.voting,
				ToxicityThreshold:   0.8,
			}

			if err := cfg.Validate(); err == nil {
				t.Error("Validate() expected error for bad window, got nil")
			}
		})
	}
}

func TestValidate_ToxicityThreshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		wantErr   bool
	}{
		{
			name:      "Valid threshold",
			threshold: 0.8,
			wantErr:   false,
		},
		{
			name:      "Upper bound inclusive",
			threshold: 1.0,
			wantErr:   false,
		},
		{
			name:      "Zero threshold",
			threshold: 0,
			wantErr:   true,
		},
		{
			name:      "Above one",
			threshold: 1.1,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				DBPassword:          "password",
				JWTSecret:           "this_is_a_test_secret_key_with_32_chars_minimum",
				ActiveDebateSeconds: 60,
				VotingWindowSeconds: 60,
				ToxicityThreshold:   tt.threshold,
			}

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateProductionSecurity(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		shouldErr bool
	}{
		{
			name: "Valid production config",
			cfg: &Config{
				AppEnv:            "production",
				DBSSLMode:         "require",
				JWTSecret:         "production_secret_key_different_from_default",
				PerspectiveAPIKey: "real_api_key",
			},
			shouldErr: false,
		},
		{
			name: "Development mode - no validation",
			cfg: &Config{
				AppEnv:    "development",
				DBSSLMode: "disable",
			},
			shouldErr: false,
		},
		{
			name: "Production without SSL",
			cfg: &Config{
				AppEnv:            "production",
				DBSSLMode:         "disable",
				JWTSecret:         "production_secret",
				PerspectiveAPIKey: "real_api_key",
			},
			shouldErr: true,
		},
		{
			name: "Production with default JWT secret",
			cfg: &Config{
				AppEnv:            "production",
				DBSSLMode:         "require",
				JWTSecret:         "your_jwt_secret_minimum_32_chars_here_change_this",
				PerspectiveAPIKey: "real_api_key",
			},
			shouldErr: true,
		},
		{
			name: "Production without Perspective key",
			cfg: &Config{
				AppEnv:    "production",
				DBSSLMode: "require",
				JWTSecret: "production_secret_key_different",
			},
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateProductionSecurity()
			if tt.shouldErr && err == nil {
				t.Error("ValidateProductionSecurity() expected error, got nil")
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("ValidateProductionSecurity() unexpected error = %v", err)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "testuser",
		DBPassword: "testpass",
		DBName:     "testdb",
		DBSSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	dsn := cfg.GetDSN()

	if dsn != expected {
		t.Errorf("GetDSN() = %q, want %q", dsn, expected)
	}
}

func TestGetDurations(t *testing.T) {
	cfg := &Config{
		ActiveDebateSeconds: 60,
		VotingWindowSeconds: 90,
	}

	if got := cfg.GetActiveDuration(); got != 60*time.Second {
		t.Errorf("GetActiveDuration() = %v, want %v", got, 60*time.Second)
	}
	if got := cfg.GetVotingWindow(); got != 90*time.Second {
		t.Errorf("GetVotingWindow() = %v, want %v", got, 90*time.Second)
	}
}
