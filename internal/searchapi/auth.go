package searchapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// operatorID is fixed and uuid.Nil: the toolkit has no concept of distinct
// end users the way server/token.go's per-User JWTs do, only a single
// operator secret (grounded on server/token.go's generateJWT/
// validateAndLookupJWTUser, simplified to one identity).
var operatorID = uuid.Nil

type authKey int

const authLoggedInKey authKey = iota

// generateToken issues an HS512 JWT for the operator identity, signed with
// secret.
func generateToken(secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"iss": "primrecd",
		"sub": operatorID.String(),
		"exp": time.Now().Add(12 * time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return tok.SignedString(secret)
}

func getBearerToken(req *http.Request) (string, error) {
	header := strings.TrimSpace(req.Header.Get("Authorization"))
	if header == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(strings.TrimSpace(parts[0]), "bearer") {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return strings.TrimSpace(parts[1]), nil
}

func validateToken(req *http.Request, secret []byte) error {
	tokStr, err := getBearerToken(req)
	if err != nil {
		return err
	}

	_, err = jwt.Parse(tokStr, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer("primrecd"), jwt.WithLeeway(time.Minute))
	return err
}

// requireAuth wraps next so that it is only invoked once the request carries
// a valid bearer token, mirroring server/token.go's RequireAuth/OptionalAuth
// split (this toolkit only needs the required variant: mutating routes
// require a token, GET routes are open per SPEC_FULL.md §3).
func requireAuth(secret []byte, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := validateToken(req, secret); err != nil {
			unauthorized(err.Error()).writeResponse(w)
			return
		}
		ctx := context.WithValue(req.Context(), authLoggedInKey, true)
		next(w, req.WithContext(ctx))
	}
}
