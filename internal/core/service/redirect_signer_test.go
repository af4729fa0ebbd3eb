package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

func decodeToken(t *testing.T, rawURL string) (userID int64, ts int64, message, signature string) {
	t.Helper()

	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse URL: %v", err)
	}
	token := u.Query().Get("token")
	if token == "" {
		t.Fatalf("URL carries no token: %s", rawURL)
	}

	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("decode token: %v", err)
	}

	parts := strings.Split(string(raw), "|")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token parts, got %d (%q)", len(parts), raw)
	}

	userID, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		t.Fatalf("parse user id: %v", err)
	}
	ts, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		t.Fatalf("parse timestamp: %v", err)
	}
	return userID, ts, parts[0] + "|" + parts[1], parts[2]
}

func hmacHex(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestRedirectSigner_RoundTrip(t *testing.T) {
	signer := NewHMACRedirectSigner("top-secret")

	before := time.Now().Unix()
	rawURL := signer.SignedURL(42, "app.example.com")
	after := time.Now().Unix()

	if !strings.HasPrefix(rawURL, "https://app.example.com?token=") {
		t.Fatalf("unexpected URL shape: %s", rawURL)
	}

	userID, ts, message, signature := decodeToken(t, rawURL)
	if userID != 42 {
		t.Fatalf("expected user id 42, got %d", userID)
	}
	if ts < before || ts > after {
		t.Fatalf("timestamp %d outside [%d, %d]", ts, before, after)
	}
	if want := hmacHex("top-secret", message); signature != want {
		t.Fatalf("signature mismatch: got %s, want %s", signature, want)
	}
}

func TestRedirectSigner_Deterministic(t *testing.T) {
	clock := fixedClock(time.Unix(1717243200, 0))
	a := NewHMACRedirectSigner("top-secret").WithClock(clock)
	b := NewHMACRedirectSigner("top-secret").WithClock(clock)

	if a.SignedURL(7, "app.example.com") != b.SignedURL(7, "app.example.com") {
		t.Fatalf("same inputs and clock must produce identical URLs")
	}
}

func TestRedirectSigner_TamperDetected(t *testing.T) {
	signer := NewHMACRedirectSigner("top-secret").
		WithClock(fixedClock(time.Unix(1717243200, 0)))

	_, _, message, signature := decodeToken(t, signer.SignedURL(42, "app.example.com"))

	// Flip each character of the message in turn; the recomputed HMAC must
	// never match the original signature.
	for i := range message {
		tampered := []byte(message)
		tampered[i] ^= 0x01
		if hmacHex("top-secret", string(tampered)) == signature {
			t.Fatalf("tampered message at index %d still verifies", i)
		}
	}
}

func TestRedirectSigner_SecretChangesSignature(t *testing.T) {
	clock := fixedClock(time.Unix(1717243200, 0))
	a := NewHMACRedirectSigner("secret-a").WithClock(clock)
	b := NewHMACRedirectSigner("secret-b").WithClock(clock)

	if a.SignedURL(42, "app.example.com") == b.SignedURL(42, "app.example.com") {
		t.Fatalf("different secrets must produce different tokens")
	}
}
