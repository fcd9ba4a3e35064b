// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthUser is the minimal view of an authenticated account that the HTTP
// layer carries through a request. It is resolved once by the auth
// middleware and read by handlers.
type AuthUser struct {
	ID       int64
	Username string
	Email    string
}

// UserResolver looks up the account an access token's subject claim refers to.
// The auth bounded context provides the implementation.
type UserResolver interface {
	ResolveByEmail(ctx context.Context, email string) (AuthUser, error)
}

// Identity represents the authenticated user's identity.
// This interface abstracts identity extraction from the web framework,
// allowing handlers to access user information without depending on Gin.
type Identity interface {
	// UserID returns the authenticated user's ID.
	UserID() int64
	// Username returns the authenticated user's username.
	Username() string
	// Email returns the authenticated user's email.
	Email() string
	// IsAuthenticated returns true if the user is authenticated.
	IsAuthenticated() bool
}

// identity is the concrete implementation of Identity.
type identity struct {
	user          AuthUser
	authenticated bool
}

func (i *identity) UserID() int64 {
	return i.user.ID
}

func (i *identity) Username() string {
	return i.user.Username
}

func (i *identity) Email() string {
	return i.user.Email
}

func (i *identity) IsAuthenticated() bool {
	return i.authenticated
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if user info is not present.
func GetIdentity(c *gin.Context) Identity {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return &identity{authenticated: false}
	}

	user, ok := value.(AuthUser)
	if !ok {
		return &identity{authenticated: false}
	}

	return &identity{user: user, authenticated: true}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the user is not authenticated, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgCredentials})
		return nil
	}
	return id
}
