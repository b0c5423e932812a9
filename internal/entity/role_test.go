package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRole(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  string
	}{
		{"no rows defaults to user", nil, "user"},
		{"single user row", []string{"user"}, "user"},
		{"admin beats teacher", []string{"teacher", "admin"}, "admin"},
		{"teacher beats user", []string{"user", "teacher"}, "teacher"},
		{"order does not matter", []string{"admin", "user"}, "admin"},
		{"unknown roles ignored", []string{"superhero"}, "user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRole(tt.roles))
		})
	}
}

func TestRoleAtLeast(t *testing.T) {
	assert.True(t, RoleAtLeast("admin", "teacher"))
	assert.True(t, RoleAtLeast("teacher", "teacher"))
	assert.False(t, RoleAtLeast("user", "teacher"))
	assert.False(t, RoleAtLeast("teacher", "admin"))
}

func TestSeedDisplayName(t *testing.T) {
	assert.Equal(t, "Juan Dela Cruz", SeedDisplayName("Juan Dela Cruz", "juan@example.com"))
	assert.Equal(t, "juan", SeedDisplayName("", "juan@example.com"))
	assert.Equal(t, "juan", SeedDisplayName("   ", "juan@example.com"))
	assert.Equal(t, "noat", SeedDisplayName("", "noat"))
}
