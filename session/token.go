package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired reports whether a persisted credential is a JWT whose expiry
// has already passed. The claim is read without signature verification: this
// is only a fast path to skip a doomed profile fetch, the server remains the
// authority. Opaque tokens and tokens without an exp claim report
// not-expired.
func tokenExpired(raw string, now time.Time) (bool, time.Time) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false, time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, time.Time{}
	}
	return exp.Time.Before(now), exp.Time
}
