package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/dayquest/internal/keyring"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newProvider(t *testing.T, tokens TokenStore) *Provider {
	t.Helper()
	p, err := NewProvider(testSecret, tokens)
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	t.Cleanup(p.Close)
	return p
}

func drain(p *Provider) []Event {
	var out []Event
	for {
		select {
		case ev := <-p.Events():
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestNewProviderRequiresSecret(t *testing.T) {
	if _, err := NewProvider("", nil); !errors.Is(err, ErrNoSecret) {
		t.Errorf("NewProvider(\"\") error = %v, want ErrNoSecret", err)
	}
}

func TestIssueAndVerify(t *testing.T) {
	p := newProvider(t, nil)

	token, err := p.Issue("user-42", time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	sub, err := p.Verify(token)
	if err != nil || sub != "user-42" {
		t.Errorf("Verify() = %q, %v; want user-42", sub, err)
	}
}

func TestVerifyRejects(t *testing.T) {
	p := newProvider(t, nil)
	other, _ := NewProvider("another-secret-another-secret-xx", nil)

	expired, _ := p.Issue("u1", -time.Minute)
	foreign, _ := other.Issue("u1", time.Hour)
	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", Issuer: "dayquest"},
	}).SignedString([]byte(testSecret))
	wrongIssuer, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "u1", Issuer: "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"expired", expired},
		{"wrong secret", foreign},
		{"missing expiry", noExp},
		{"wrong issuer", wrongIssuer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestLoginEmitsOnlyOnTransition(t *testing.T) {
	p := newProvider(t, nil)
	tokA, _ := p.Issue("a", time.Hour)
	tokA2, _ := p.Issue("a", 2*time.Hour)
	tokB, _ := p.Issue("b", time.Hour)

	for _, tok := range []string{tokA, tokA2, tokA} {
		if _, err := p.Login(tok); err != nil {
			t.Fatalf("Login() error = %v", err)
		}
	}
	if evs := drain(p); len(evs) != 1 || !evs[0].Authenticated || evs[0].UserID != "a" {
		t.Fatalf("events after repeated login = %+v, want one authenticated(a)", evs)
	}

	if _, err := p.Login(tokB); err != nil {
		t.Fatal(err)
	}
	p.Logout()
	p.Logout()

	evs := drain(p)
	if len(evs) != 2 {
		t.Fatalf("events = %+v, want authenticated(b) then unauthenticated", evs)
	}
	if !evs[0].Authenticated || evs[0].UserID != "b" || evs[1].Authenticated {
		t.Errorf("events = %+v", evs)
	}
	if _, ok := p.UserID(); ok {
		t.Error("UserID() reports a user after logout")
	}
}

func TestLoginInvalidKeepsState(t *testing.T) {
	p := newProvider(t, nil)
	tok, _ := p.Issue("a", time.Hour)
	_, _ = p.Login(tok)
	drain(p)

	if _, err := p.Login("bogus"); err == nil {
		t.Fatal("Login(bogus) succeeded")
	}
	if id, ok := p.UserID(); !ok || id != "a" {
		t.Errorf("UserID() = %q, %v after failed login", id, ok)
	}
	if evs := drain(p); len(evs) != 0 {
		t.Errorf("failed login emitted %+v", evs)
	}
}

func TestResumeFromKeyring(t *testing.T) {
	gokeyring.MockInit()
	_ = keyring.DeleteSessionToken()

	first := newProvider(t, KeyringTokens{})
	if _, ok := first.Resume(); ok {
		t.Fatal("Resume() succeeded with nothing stored")
	}
	tok, _ := first.Issue("u7", time.Hour)
	if _, err := first.Login(tok); err != nil {
		t.Fatal(err)
	}

	second := newProvider(t, KeyringTokens{})
	id, ok := second.Resume()
	if !ok || id != "u7" {
		t.Fatalf("Resume() = %q, %v; want u7", id, ok)
	}
	if evs := drain(second); len(evs) != 1 || evs[0].UserID != "u7" {
		t.Errorf("Resume() events = %+v", evs)
	}

	second.Logout()
	if _, err := keyring.GetSessionToken(); !errors.Is(err, keyring.ErrNotFound) {
		t.Errorf("token still stored after logout: %v", err)
	}
}

func TestResumeDiscardsStaleToken(t *testing.T) {
	gokeyring.MockInit()
	p := newProvider(t, KeyringTokens{})

	expired, _ := p.Issue("u1", -time.Hour)
	_ = keyring.SetSessionToken(expired)

	if _, ok := p.Resume(); ok {
		t.Fatal("Resume() accepted an expired token")
	}
	if _, err := keyring.GetSessionToken(); !errors.Is(err, keyring.ErrNotFound) {
		t.Errorf("expired token not discarded: %v", err)
	}
}
