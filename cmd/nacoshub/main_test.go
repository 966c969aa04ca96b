package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ENV", "prod") // skip .env loading
	t.Setenv("SESSION_SECRET", "test")
	t.Setenv("DATABASE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVerifyCommand(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want string
	}{
		{"active", "fcp/csc/22/1001", "FCP/CSC/22/1001: active"},
		{"inactive", "FCP/IFT/22/0089", "FCP/IFT/22/0089: inactive"},
		{"unknown", "FCP/CSC/99/0001", "FCP/CSC/99/0001: not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, "verify", tt.arg)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestVerifyCommand_EmptyInput(t *testing.T) {
	_, err := runCLI(t, "verify", "  ")
	assert.Error(t, err)
}

func TestMailerRequiresBroker(t *testing.T) {
	t.Setenv("KAFKA_BROKER", "")
	_, err := runCLI(t, "mailer")
	assert.ErrorContains(t, err, "KAFKA_BROKER")
}
