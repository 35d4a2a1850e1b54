package session

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Redirect targets for denied checks.
const (
	AdminLoginPath    = "/admin/login"
	CustomerLoginPath = "/login"
)

// Decision is the outcome of a guard check: render the protected view, or
// redirect to a login page. Failures are never surfaced as errors; a failed
// check is simply a deny.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(redirectTo string) Decision {
	return Decision{RedirectTo: redirectTo}
}

// Guard gates protected views on the presence and local validity of a stored
// identity. It is a presentation gate only: token payloads are decoded, not
// cryptographically verified, and the decoded claims are never used for any
// authorization decision beyond redirect routing. The API remains the sole
// trust boundary.
type Guard struct {
	store Store
	now   func() time.Time
}

func NewGuard(store Store) *Guard {
	return &Guard{store: store, now: time.Now}
}

// AuthorizeAdmin allows when a stored admin token and user record both exist
// and the record's role is "admin". When the token is a well-formed compact
// JWT its expiry is also checked locally, matching the customer variant; a
// token that does not decode is treated as opaque and accepted on presence
// and role alone.
func (g *Guard) AuthorizeAdmin() Decision {
	token, ok := g.store.Get(KeyAdminToken)
	if !ok || token == "" {
		g.clearAdmin()
		return deny(AdminLoginPath)
	}

	userJSON, ok := g.store.Get(KeyAdminUser)
	if !ok || userJSON == "" {
		g.clearAdmin()
		return deny(AdminLoginPath)
	}

	var user struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil || user.Role != "admin" {
		g.clearAdmin()
		return deny(AdminLoginPath)
	}

	if exp, ok := decodeExpiry(token); ok && g.now().Unix() >= exp {
		g.clearAdmin()
		return deny(AdminLoginPath)
	}

	return allow()
}

// AuthorizeCustomer allows when a stored customer token exists, decodes, and
// has not passed its exp claim. Any failure clears the stored identity
// before denying, so a stale session never lingers past one failed check.
func (g *Guard) AuthorizeCustomer() Decision {
	token, ok := g.store.Get(KeyCustomerToken)
	if !ok || token == "" {
		g.clearCustomer()
		return deny(CustomerLoginPath)
	}

	claims, err := decodeClaims(token)
	if err != nil {
		g.clearCustomer()
		return deny(CustomerLoginPath)
	}

	if exp, ok := expiry(claims); ok && g.now().Unix() >= exp {
		g.clearCustomer()
		return deny(CustomerLoginPath)
	}

	return allow()
}

func (g *Guard) clearAdmin() {
	Clear(g.store, KeyAdminToken, KeyAdminUser)
}

func (g *Guard) clearCustomer() {
	Clear(g.store, KeyCustomerToken, KeyCustomerProfile)
}

// decodeClaims extracts the payload of a compact token without verifying its
// signature. Malformed structure, invalid base64, and invalid JSON all
// surface as an error, never a panic.
func decodeClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// expiry returns the exp claim in seconds since epoch. A token without an
// exp claim never expires locally.
func expiry(claims jwt.MapClaims) (int64, bool) {
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, false
	}
	return exp.Unix(), true
}

func decodeExpiry(token string) (int64, bool) {
	claims, err := decodeClaims(token)
	if err != nil {
		return 0, false
	}
	return expiry(claims)
}
