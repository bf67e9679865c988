//go:build integration

package testutil

import (
	"encoding/json"
	"net/http"
	"testing"
)

// Envelope is the decoded wire envelope.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

// DecodeEnvelope reads and decodes the response envelope, closing the body.
func DecodeEnvelope(t *testing.T, resp *http.Response) Envelope {
	t.Helper()
	defer resp.Body.Close()
	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	return env
}

// DecodeData decodes the envelope's data payload into dst.
func DecodeData(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	env := DecodeEnvelope(t, resp)
	if !env.Success {
		msg := "<no error>"
		if env.Error != nil {
			msg = env.Error.Message
		}
		t.Fatalf("DecodeData: envelope is a failure: %s", msg)
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("DecodeData: %v", err)
	}
}

// AssertStatus checks that the response has the expected HTTP status code.
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

// AssertErrorMessage checks that the failure envelope carries the expected message.
func AssertErrorMessage(t *testing.T, resp *http.Response, expected string) {
	t.Helper()
	env := DecodeEnvelope(t, resp)
	if env.Success {
		t.Errorf("expected failure envelope, got success")
		return
	}
	if env.Error == nil || env.Error.Message != expected {
		got := "<nil>"
		if env.Error != nil {
			got = env.Error.Message
		}
		t.Errorf("expected error message %q, got %q", expected, got)
	}
}
