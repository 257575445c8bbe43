// Package session turns signed tokens into authenticated/unauthenticated
// transitions. The rest of the system only sees a user id or its absence.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/julianstephens/dayquest/internal/constants"
	"github.com/julianstephens/dayquest/internal/keyring"
	"github.com/julianstephens/dayquest/internal/logger"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrNoSecret     = errors.New("session secret is not configured")
)

// Event is a session transition. Authenticated events carry the user id.
type Event struct {
	Authenticated bool
	UserID        string
}

// TokenStore persists the current token between processes.
type TokenStore interface {
	Get() (string, error)
	Set(token string) error
	Delete() error
}

// KeyringTokens keeps the token in the OS keyring.
type KeyringTokens struct{}

func (KeyringTokens) Get() (string, error)   { return keyring.GetSessionToken() }
func (KeyringTokens) Set(token string) error { return keyring.SetSessionToken(token) }
func (KeyringTokens) Delete() error          { return keyring.DeleteSessionToken() }

type Claims struct {
	jwt.RegisteredClaims
}

type Provider struct {
	secret []byte
	tokens TokenStore
	now    func() time.Time

	mu     sync.Mutex
	userID string
	token  string

	// sendMu guards events and closed separately so a slow consumer never
	// holds up UserID.
	sendMu sync.Mutex
	events chan Event
	closed bool
}

// NewProvider returns a provider verifying HS256 tokens with secret. tokens
// may be nil, in which case nothing is persisted.
func NewProvider(secret string, tokens TokenStore) (*Provider, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &Provider{
		secret: []byte(secret),
		tokens: tokens,
		now:    time.Now,
		events: make(chan Event, 8),
	}, nil
}

// Events delivers transitions in order. The channel is buffered; a consumer
// that stops reading eventually blocks Login and Logout.
func (p *Provider) Events() <-chan Event {
	return p.events
}

// Issue mints a token for userID valid for ttl.
func (p *Provider) Issue(userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: empty user id", ErrInvalidToken)
	}
	now := p.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    constants.AppName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Verify checks the signature, issuer and expiry of token and returns its subject.
func (p *Provider) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	},
		jwt.WithIssuer(constants.AppName),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Login verifies token and authenticates its subject. An event is emitted only
// when the signed-in user actually changes.
func (p *Provider) Login(token string) (string, error) {
	userID, err := p.Verify(token)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	changed := p.userID != userID
	p.userID = userID
	p.token = token
	p.mu.Unlock()

	if p.tokens != nil {
		if err := p.tokens.Set(token); err != nil {
			logger.Warn("could not persist session token", "error", err)
		}
	}
	if changed {
		p.emit(Event{Authenticated: true, UserID: userID})
	}
	return userID, nil
}

// Resume logs in with the persisted token, if any. A stored token that no
// longer verifies is discarded.
func (p *Provider) Resume() (string, bool) {
	if p.tokens == nil {
		return "", false
	}
	token, err := p.tokens.Get()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Warn("could not read session token", "error", err)
		}
		return "", false
	}
	userID, err := p.Login(token)
	if err != nil {
		logger.Info("stored session token rejected", "error", err)
		_ = p.tokens.Delete()
		return "", false
	}
	return userID, true
}

// Logout ends the session and forgets the persisted token.
func (p *Provider) Logout() {
	p.mu.Lock()
	was := p.userID != ""
	p.userID = ""
	p.token = ""
	p.mu.Unlock()

	if p.tokens != nil {
		if err := p.tokens.Delete(); err != nil {
			logger.Warn("could not delete session token", "error", err)
		}
	}
	if was {
		p.emit(Event{Authenticated: false})
	}
}

// UserID returns the authenticated user, if any.
func (p *Provider) UserID() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.userID, p.userID != ""
}

// Close stops event delivery.
func (p *Provider) Close() {
	p.sendMu.Lock()
	defer p.sendMu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.events)
	}
}

func (p *Provider) emit(ev Event) {
	p.sendMu.Lock()
	defer p.sendMu.Unlock()
	if p.closed {
		return
	}
	p.events <- ev
}
