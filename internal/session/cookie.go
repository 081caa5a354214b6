package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// CookieName is the session cookie sent to the browser.
const CookieName = "alefbata_session"

// Codec signs session ids so a cookie can't be forged to point at another
// session. The cookie value is "<id>.<hex hmac-sha256>".
type Codec struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewCodec builds a codec. secure controls the cookie Secure flag and
// should be on outside local development.
func NewCodec(secret string, ttl time.Duration, secure bool) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl, secure: secure}
}

// TTL is how long issued sessions live.
func (c *Codec) TTL() time.Duration { return c.ttl }

func (c *Codec) sign(id string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}

// Set writes the session cookie for id onto the response.
func (c *Codec) Set(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id + "." + c.sign(id),
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie.
func (c *Codec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Decode extracts and authenticates the session id from a request cookie.
func (c *Codec) Decode(r *http.Request) (string, error) {
	const op = "session.Decode"

	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	id, sig, ok := strings.Cut(cookie.Value, ".")
	if !ok || id == "" {
		return "", fmt.Errorf("%s: malformed cookie", op)
	}
	if !hmac.Equal([]byte(sig), []byte(c.sign(id))) {
		return "", fmt.Errorf("%s: bad signature", op)
	}
	return id, nil
}
