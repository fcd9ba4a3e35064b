package repository

import (
	"strings"
	"testing"
)

func TestCreateUserReturnsFullRow(t *testing.T) {
	query := strings.ToLower(createUserQuery)

	requiredFragments := []string{
		"insert into users",
		"returning id, username, email, password_hash, created_at",
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected fragment %q to be present", fragment)
		}
	}
}

func TestLookupQueriesFilterOnSingleColumn(t *testing.T) {
	if !strings.Contains(strings.ToLower(getUserByEmailQuery), "where email = $1") {
		t.Fatal("email lookup must filter on the email column")
	}
	if !strings.Contains(strings.ToLower(getUserByUsernameQuery), "where username = $1") {
		t.Fatal("username lookup must filter on the username column")
	}
}
