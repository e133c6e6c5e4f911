package helper

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/forevertrendin/user_service/internal/errs"
	"github.com/golang-jwt/jwt/v5"
)

// Auth issues and verifies HS256 bearer tokens. The signing secret is
// process-wide and read-only after construction.
type Auth struct {
	secret []byte
	ttl    time.Duration
}

func SetupAuth(secret string, ttl time.Duration) Auth {
	return Auth{secret: []byte(secret), ttl: ttl}
}

// GenerateToken signs a token whose subject is the user id and whose expiry is
// now + ttl. Pure function of its inputs, the secret and the clock.
func (a Auth) GenerateToken(userID uint) (string, error) {
	if userID == 0 {
		return "", errs.ErrInvalidInput
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// VerifyToken accepts either "Bearer <token>" or a bare token string and returns
// the authenticated user id. Failures map onto exactly one of the errs.ErrToken*
// sentinels; callers must not leak which one occurred to the client.
func (a Auth) VerifyToken(header string) (uint, error) {
	tokenStr := strings.TrimSpace(header)
	if tokenStr == "" {
		return 0, errs.ErrTokenMissing
	}
	if strings.HasPrefix(strings.ToLower(tokenStr), "bearer ") {
		parts := strings.SplitN(tokenStr, " ", 2)
		tokenStr = strings.TrimSpace(parts[1])
	}
	if tokenStr == "" || tokenStr == "null" {
		return 0, errs.ErrTokenMissing
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.ErrTokenInvalidSignature
		}
		return a.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return 0, errs.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return 0, errs.ErrTokenInvalidSignature
	case err != nil:
		return 0, errs.ErrTokenMalformed
	case !token.Valid:
		return 0, errs.ErrTokenMalformed
	}

	userID, perr := strconv.ParseUint(claims.Subject, 10, 64)
	if perr != nil || userID == 0 {
		return 0, errs.ErrTokenMalformed
	}
	return uint(userID), nil
}
