package utils // package utils provides helper functions for session tokens and hashing

import (
    "crypto/rand"  // secure random number generation
    "encoding/hex" // hex encoding for session ids
    "errors"       // sentinel errors for token parsing
    "time"         // expiration handling

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionToken is the signed value stored in the admin session cookie.
// The Token field contains the serialized HS256 JWT.  ID is the random
// session id embedded as the jti claim; the server-side session record is
// keyed by it, so the cookie alone is never sufficient: the signature
// proves the cookie was issued by us and the live record proves the
// session has not been logged out or expired.
type SessionToken struct {
    Token string    // the serialized JWT string
    ID    string    // random session id (jti claim)
    Exp   time.Time // the UTC expiration time
}

// ErrInvalidSessionToken is returned when a cookie value fails signature
// or claim validation.
var ErrInvalidSessionToken = errors.New("invalid session token")

// NewSessionToken builds and signs an HS256 JWT for an admin session.  It
// takes the signing secret, the admin username and a TTL in minutes.  The
// JWT includes subject (sub), session id (jti), expiration (exp) and
// issued at (iat) claims.
func NewSessionToken(secret, username string, ttlMin int) (SessionToken, error) {
    id, err := RandomHex(24)
    if err != nil {
        return SessionToken{}, err
    }
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub": username,
        "jti": id,
        "exp": exp.Unix(),
        "iat": time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, ID: id, Exp: exp}, nil
}

// ParseSessionToken validates a cookie value and returns the embedded
// username and session id.  Tokens signed with a different method or
// secret, expired tokens and tokens with missing claims all yield
// ErrInvalidSessionToken.
func ParseSessionToken(secret, raw string) (username, id string, err error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidSessionToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return "", "", ErrInvalidSessionToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return "", "", ErrInvalidSessionToken
    }
    username, _ = claims["sub"].(string)
    id, _ = claims["jti"].(string)
    if username == "" || id == "" {
        return "", "", ErrInvalidSessionToken
    }
    return username, id, nil
}

// RandomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.  It is used for session ids and
// uploaded file names.
func RandomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
