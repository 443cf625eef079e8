package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"auth": map[string]any{
			"jwt": map[string]any{
				"secret":    "",
				"accessTTL": "60m",
			},
			"bootstrapAdminEmail": "",
		},
		"storage": map[string]any{
			"bucketUrl": "mem://",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "AUTH_JWT_SECRET", want: "auth.jwt.secret"},
		{envKey: "AUTH_JWT_ACCESSTTL", want: "auth.jwt.accessTTL"},
		{envKey: "AUTH_BOOTSTRAPADMINEMAIL", want: "auth.bootstrapAdminEmail"},
		{envKey: "STORAGE_BUCKETURL", want: "storage.bucketUrl"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
