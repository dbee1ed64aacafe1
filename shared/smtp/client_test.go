package smtp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mail "github.com/wneessen/go-mail"
)

func TestNewClient_EmptyCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "both empty", email: "", password: ""},
		{name: "missing password", email: "me@example.com", password: ""},
		{name: "missing email", email: "", password: "app-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(&Config{Host: "smtp.example.com", Port: 587}, tt.email, tt.password, nil)

			require.Error(t, err)
			assert.Nil(t, client)

			var authErr *AuthError
			assert.ErrorAs(t, err, &authErr)
		})
	}
}

func TestParseTLSPolicy(t *testing.T) {
	assert.Equal(t, mail.TLSMandatory, parseTLSPolicy("mandatory"))
	assert.Equal(t, mail.TLSMandatory, parseTLSPolicy(""))
	assert.Equal(t, mail.TLSMandatory, parseTLSPolicy("bogus"))
	assert.Equal(t, mail.TLSOpportunistic, parseTLSPolicy("opportunistic"))
	assert.Equal(t, mail.NoTLS, parseTLSPolicy("none"))
}

func TestAuthError(t *testing.T) {
	inner := errors.New("535 authentication failed")
	err := &AuthError{Err: inner}

	assert.Contains(t, err.Error(), "smtp authentication failed")
	assert.ErrorIs(t, err, inner)
}

func TestDeliveryError(t *testing.T) {
	inner := errors.New("mailbox unavailable")

	single := &DeliveryError{Recipient: "a@x.com", Err: inner}
	assert.Contains(t, single.Error(), "a@x.com")
	assert.ErrorIs(t, single, inner)

	batch := &DeliveryError{Err: inner}
	assert.Contains(t, batch.Error(), "batch")
	assert.ErrorIs(t, batch, inner)
}
