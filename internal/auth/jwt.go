package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Realm identifies which identity space a token's subject belongs to. Admin
// and app-user ids live in separate tables, so the realm travels inside the
// signed claims and is checked on every verification.
type Realm string

const (
	RealmAdmin Realm = "admin"
	RealmUser  Realm = "user"
)

// TokenKind identifies what a token may be used for.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// Token lifetimes.
const (
	AccessTokenTTL  = time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour
)

// Verification failures. Callers branch with errors.Is.
var (
	ErrTokenMalformed  = errors.New("token is malformed or has an invalid signature")
	ErrTokenExpired    = errors.New("token has expired")
	ErrTokenWrongKind  = errors.New("token kind not valid for this endpoint")
	ErrTokenWrongRealm = errors.New("token realm not valid for this endpoint")
)

// Claims holds the signed claim set: subject identity, realm, validity window
// and kind.
type Claims struct {
	jwt.RegisteredClaims
	Realm Realm     `json:"realm"`
	Kind  TokenKind `json:"kind"`
}

// SubjectID returns the subject as the numeric row id within the claim's realm.
func (c *Claims) SubjectID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse subject: %w", err)
	}
	return id, nil
}

// Codec signs and verifies bearer tokens with a process-wide HS256 secret.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec creates a Codec. It refuses an empty secret: issuing unsigned or
// trivially forgeable tokens is worse than not starting.
func NewCodec(secret string, accessTTL, refreshTTL time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if accessTTL <= 0 {
		accessTTL = AccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = RefreshTokenTTL
	}
	return &Codec{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}, nil
}

// Issue creates a signed token of the given kind for a subject in the realm.
func (c *Codec) Issue(realm Realm, subjectID int64, kind TokenKind) (string, error) {
	switch realm {
	case RealmAdmin, RealmUser:
	default:
		return "", fmt.Errorf("unknown realm: %s", realm)
	}

	var ttl time.Duration
	switch kind {
	case TokenAccess:
		ttl = c.accessTTL
	case TokenRefresh:
		ttl = c.refreshTTL
	default:
		return "", fmt.Errorf("unknown token kind: %s", kind)
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Realm: realm,
		Kind:  kind,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks the signature and expiry of a token and returns its claims.
// Failures are ErrTokenMalformed or ErrTokenExpired, never both.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		// A bad signature must never surface as "expired": expiry is only
		// trusted once the signature checks out.
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// VerifyForRealm verifies a token and ensures it carries the expected realm
// and kind. An admin id and a user id can collide numerically, so a token is
// never accepted outside the realm it was issued for, and a refresh token
// cannot stand in for an access token or vice versa.
func (c *Codec) VerifyForRealm(tokenString string, realm Realm, kind TokenKind) (*Claims, error) {
	claims, err := c.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Realm != realm {
		return nil, ErrTokenWrongRealm
	}
	if claims.Kind != kind {
		return nil, ErrTokenWrongKind
	}
	return claims, nil
}
