package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentialsError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *CredentialsError
		want string
	}{
		{
			"bare",
			&CredentialsError{},
			"credentials invalid",
		},
		{
			"with reason",
			&CredentialsError{Reason: "no credentials configured"},
			"credentials invalid: no credentials configured",
		},
		{
			"with payload",
			&CredentialsError{Reason: "token refresh failed", Payload: json.RawMessage(`{"errors":[]}`)},
			`credentials invalid: token refresh failed: {"errors":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsCredentialsError(t *testing.T) {
	err := &CredentialsError{Reason: "x"}

	assert.True(t, IsCredentialsError(err))
	assert.True(t, IsCredentialsError(fmt.Errorf("wrapped: %w", err)), "detected through wrapping")
	assert.False(t, IsCredentialsError(errors.New("other")))
	assert.False(t, IsCredentialsError(nil))
}
