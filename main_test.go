package main

import (
	"bytes"
	"context"
	"errors"
	"gsbot/internal/core/domain"
	"gsbot/internal/core/port"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMessenger struct {
	commands []string
	startErr error
}

func (s *stubMessenger) RegisterCommand(name string, _ port.Action) {
	s.commands = append(s.commands, name)
}

func (s *stubMessenger) Start(_ context.Context) error {
	return s.startErr
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRootCmd(t *testing.T) {
	tests := []struct {
		name         string
		config       string
		envToken     string
		startErr     error
		wantErr      error
		wantStderr   string
		wantCommands []string
	}{
		{
			name:       "missing token",
			config:     "",
			wantErr:    domain.ErrMissingToken,
			wantStderr: "Error: TELEGRAM_BOT_TOKEN environment variable is not set.",
		},
		{
			name:         "token from file",
			config:       "[telegram]\nbot_token = \"file-token\"\n",
			wantCommands: []string{"ping"},
		},
		{
			name:         "token from environment",
			config:       "",
			envToken:     "env-token",
			wantCommands: []string{"ping"},
		},
		{
			name:         "loop error reported",
			config:       "[telegram]\nbot_token = \"file-token\"\n",
			startErr:     errors.New("polling failed"),
			wantErr:      errors.New("polling failed"),
			wantStderr:   "Error running the bot: polling failed",
			wantCommands: []string{"ping"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TELEGRAM_BOT_TOKEN", tc.envToken)

			messenger := &stubMessenger{startErr: tc.startErr}
			var dialedToken string
			dial := func(token string) (port.Messenger, error) {
				dialedToken = token
				return messenger, nil
			}

			var stderr bytes.Buffer
			cmd := newRootCmd(dial)
			cmd.SetErr(&stderr)
			cmd.SetArgs([]string{"--config", writeConfig(t, tc.config), "--log-level", "error"})

			err := cmd.ExecuteContext(t.Context())

			switch {
			case tc.wantErr == nil:
				require.NoError(t, err)
				assert.NotEmpty(t, dialedToken)
			case errors.Is(tc.wantErr, domain.ErrMissingToken):
				require.ErrorIs(t, err, domain.ErrMissingToken)
				assert.Empty(t, dialedToken)
			default:
				require.EqualError(t, err, tc.wantErr.Error())
			}

			assert.Contains(t, stderr.String(), tc.wantStderr)
			assert.Equal(t, tc.wantCommands, messenger.commands)
		})
	}
}

func TestRootCmdInvalidConfig(t *testing.T) {
	var stderr bytes.Buffer
	cmd := newRootCmd(func(string) (port.Messenger, error) {
		t.Fatal("must not dial")
		return nil, nil
	})
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--config", writeConfig(t, "[handler]\ntimeout = \"never\"\n")})

	err := cmd.ExecuteContext(t.Context())
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "Error running the bot")
}

func TestWatchServeErrors(t *testing.T) {
	t.Run("serve error cancels with cause", func(t *testing.T) {
		errCh := make(chan error, 1)
		ctx, cancel := watchServeErrors(context.Background(), errCh)
		defer cancel(nil)

		serveErr := errors.New("address in use")
		errCh <- serveErr

		<-ctx.Done()
		cause := context.Cause(ctx)
		require.ErrorIs(t, cause, serveErr)
		assert.EqualError(t, cause, "metrics server failed: address in use")
	})

	t.Run("closed channel leaves context running", func(t *testing.T) {
		errCh := make(chan error)
		ctx, cancel := watchServeErrors(context.Background(), errCh)
		defer cancel(nil)

		close(errCh)

		assert.Never(t, func() bool { return ctx.Err() != nil }, 50*time.Millisecond, 5*time.Millisecond)
	})

	t.Run("parent cancellation keeps plain cause", func(t *testing.T) {
		parent, parentCancel := context.WithCancel(context.Background())
		ctx, cancel := watchServeErrors(parent, make(chan error))
		defer cancel(nil)

		parentCancel()

		<-ctx.Done()
		assert.ErrorIs(t, context.Cause(ctx), context.Canceled)
	})
}
