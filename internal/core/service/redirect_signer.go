package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"
)

// HMACRedirectSigner produces the signed handoff URLs consumed by the
// external webapp. The token format is fixed by the webapp's verifier:
//
//	message   = "<user_id>|<unix_ts>"
//	signature = hex(HMAC-SHA256(secret, message))
//	token     = urlsafe_base64("<message>|<signature>")   (padded)
//	url       = "https://<base>?token=<token>"
//
// The token carries no expiry; the verifier enforces its own freshness
// window from the embedded timestamp.
type HMACRedirectSigner struct {
	secret []byte
	now    func() time.Time
}

func NewHMACRedirectSigner(secret string) *HMACRedirectSigner {
	return &HMACRedirectSigner{secret: []byte(secret), now: time.Now}
}

// WithClock overrides the time source. Intended for tests.
func (g *HMACRedirectSigner) WithClock(now func() time.Time) *HMACRedirectSigner {
	g.now = now
	return g
}

// SignedURL builds the full redirect URL for the given user id.
func (g *HMACRedirectSigner) SignedURL(userID int64, baseURL string) string {
	message := fmt.Sprintf("%d|%d", userID, g.now().Unix())

	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(message))
	signature := hex.EncodeToString(mac.Sum(nil))

	token := base64.URLEncoding.EncodeToString([]byte(message + "|" + signature))
	return fmt.Sprintf("https://%s?token=%s", baseURL, token)
}
