package slack

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "8f742231b10e8888abcd99yyyzzz85a5"

func signedRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/slack/events", bytes.NewBufferString(body))
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(testSecret))
	fmt.Fprintf(mac, "v0:%s:%s", ts, body)
	req.Header.Set("X-Slack-Request-Timestamp", ts)
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(mac.Sum(nil)))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestURLVerificationChallenge(t *testing.T) {
	h := NewEventsHandler(testSecret, func(string, string, string) {
		t.Fatal("mention handler must not run for url_verification")
	}, nil)

	body := `{"type":"url_verification","token":"tok","challenge":"c0ffee"}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, signedRequest(t, body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "c0ffee", rec.Body.String())
}

func TestBadSignatureRejected(t *testing.T) {
	called := false
	h := NewEventsHandler(testSecret, func(string, string, string) { called = true }, nil)

	body := `{"type":"url_verification","token":"tok","challenge":"c0ffee"}`
	req := httptest.NewRequest(http.MethodPost, "/slack/events", bytes.NewBufferString(body))
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(time.Now().Unix(), 10))
	req.Header.Set("X-Slack-Signature", "v0=deadbeef")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAppMentionDispatched(t *testing.T) {
	type mention struct{ user, channel, text string }
	got := make(chan mention, 1)

	h := NewEventsHandler(testSecret, func(user, channel, text string) {
		got <- mention{user, channel, text}
	}, nil)

	body := `{"type":"event_callback","event":{"type":"app_mention","user":"UAAA","channel":"C123","text":"<@U0BOT9X> add"}}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, signedRequest(t, body))

	require.Equal(t, http.StatusOK, rec.Code)
	select {
	case m := <-got:
		assert.Equal(t, "UAAA", m.user)
		assert.Equal(t, "C123", m.channel)
		assert.Equal(t, "<@U0BOT9X> add", m.text)
	case <-time.After(time.Second):
		t.Fatal("mention was never dispatched")
	}
}
