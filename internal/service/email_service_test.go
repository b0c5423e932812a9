package service

import (
	"fmt"
	"testing"

	"github.com/alumnet/reunion/pkg/errcode"
	"github.com/stretchr/testify/assert"
)

func TestValidateRecipients(t *testing.T) {
	t.Run("valid list", func(t *testing.T) {
		got, err := validateRecipients([]string{"a@example.com", " b@example.org "})
		assert.NoError(t, err)
		assert.Equal(t, []string{"a@example.com", "b@example.org"}, got)
	})

	t.Run("blank entries skipped", func(t *testing.T) {
		got, err := validateRecipients([]string{"", "a@example.com", "  "})
		assert.NoError(t, err)
		assert.Equal(t, []string{"a@example.com"}, got)
	})

	t.Run("empty list", func(t *testing.T) {
		_, err := validateRecipients(nil)
		assert.Equal(t, errcode.ErrNoRecipients, err)
	})

	t.Run("bad address", func(t *testing.T) {
		for _, addr := range []string{"not-an-email", "a@b", "a b@example.com", "@example.com"} {
			_, err := validateRecipients([]string{addr})
			assert.Equal(t, errcode.ErrBadEmailAddress, err, addr)
		}
	})

	t.Run("over recipient cap", func(t *testing.T) {
		to := make([]string, 101)
		for i := range to {
			to[i] = fmt.Sprintf("user%d@example.com", i)
		}
		_, err := validateRecipients(to)
		assert.Equal(t, errcode.ErrTooManyRecipients, err)

		_, err = validateRecipients(to[:100])
		assert.NoError(t, err)
	})
}
