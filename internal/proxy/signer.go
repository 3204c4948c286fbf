package proxy

import (
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 24 * time.Hour

type linkClaims struct {
	URL string `json:"url"`
	jwt.RegisteredClaims
}

// Signer mints and checks HS256 tokens that bind a proxy link to one target URL.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *Signer) Sign(target string) (string, error) {
	now := s.now()
	claims := &linkClaims{
		URL: target,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign proxy link: %w", err)
	}
	return signed, nil
}

func (s *Signer) Verify(token, target string) error {
	if token == "" {
		return ErrInvalidToken
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	claims := &linkClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return ErrInvalidToken
	}
	if claims.URL != target {
		return fmt.Errorf("%w: url mismatch", ErrInvalidToken)
	}
	return nil
}

// Link returns a same-origin proxy path for target, signed when s is non-nil.
func Link(s *Signer, target string) (string, error) {
	q := url.Values{}
	q.Set("url", target)
	if s != nil {
		token, err := s.Sign(target)
		if err != nil {
			return "", err
		}
		q.Set("token", token)
	}
	return Path + "?" + q.Encode(), nil
}
