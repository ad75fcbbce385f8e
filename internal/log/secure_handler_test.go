package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestSecureHandlerSanitizesSensitiveKeys tests masking by attribute key.
func TestSecureHandlerSanitizesSensitiveKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		value    string
		wantMask bool
	}{
		{"api_key is masked", "api_key", "abc123", true},
		{"API_KEY uppercase is masked", "API_KEY", "abc123", true},
		{"access_token_secret is masked", "access_token_secret", "xyz", true},
		{"authorization is masked", "authorization", "OAuth oauth_consumer_key=...", true},
		{"keyword inside key is masked", "user_password_hash", "deadbeef", true},
		{"plain key passes through", "artist", "Radiohead", false},
		{"keyboard is not a credential", "keyboard", "qwerty", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewSecureHandler(slog.NewTextHandler(&buf, nil)))

			logger.Info("test message", tt.key, tt.value)

			output := buf.String()
			if tt.wantMask {
				if strings.Contains(output, tt.value) {
					t.Errorf("output still contains sensitive value: %s", output)
				}
				if !strings.Contains(output, MaskValue) {
					t.Errorf("output missing mask: %s", output)
				}
			} else {
				if !strings.Contains(output, tt.value) {
					t.Errorf("benign value was masked: %s", output)
				}
			}
		})
	}
}

// TestSecureHandlerSanitizesSensitiveValues tests masking by value pattern.
func TestSecureHandlerSanitizesSensitiveValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{"bearer token", "Bearer abcdef123456"},
		{"oauth header", "OAuth oauth_signature=sig"},
		{"long opaque token", strings.Repeat("a", 48)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewSecureHandler(slog.NewTextHandler(&buf, nil)))

			logger.Info("test message", "header", tt.value)

			if strings.Contains(buf.String(), tt.value) {
				t.Errorf("output still contains sensitive value: %s", buf.String())
			}
		})
	}
}

// TestSecureHandlerWithAttrs tests that pre-bound attributes are sanitized.
func TestSecureHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSecureHandler(slog.NewTextHandler(&buf, nil)))

	logger.With("api_secret", "supersecret").Info("bound attrs")

	if strings.Contains(buf.String(), "supersecret") {
		t.Errorf("bound attribute leaked: %s", buf.String())
	}
}

// TestSecureHandlerGroups tests recursion into attribute groups.
func TestSecureHandlerGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSecureHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("grouped",
		slog.Group("request",
			slog.String("token", "hidden-token"),
			slog.String("path", "/2/tweets"),
		),
	)

	output := buf.String()
	if strings.Contains(output, "hidden-token") {
		t.Errorf("grouped credential leaked: %s", output)
	}
	if !strings.Contains(output, "/2/tweets") {
		t.Errorf("benign grouped value was lost: %s", output)
	}
}

// TestNewSecureLogger tests level configuration.
func TestNewSecureLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	quiet := NewSecureLogger(&buf, false)
	quiet.Info("should not appear")
	if buf.Len() != 0 {
		t.Errorf("non-verbose logger should suppress info: %s", buf.String())
	}

	verbose := NewSecureLogger(&buf, true)
	verbose.Debug("should appear")
	if buf.Len() == 0 {
		t.Error("verbose logger should emit debug")
	}
}
