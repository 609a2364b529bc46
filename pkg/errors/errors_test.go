package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		msg      string
		expected string
	}{
		{
			name: "nil error stays nil",
			err:  nil,
			msg:  "loading feed",
		},
		{
			name:     "sentinel is wrapped",
			err:      ErrPackageNotFound,
			msg:      "resolving Newtonsoft.Json",
			expected: "resolving Newtonsoft.Json: package not found",
		},
		{
			name:     "empty message",
			err:      errors.New("boom"),
			msg:      "",
			expected: ": boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrap(tt.err, tt.msg)
			if tt.err == nil {
				assert.NoError(t, result)
				return
			}
			require.Error(t, result)
			assert.Equal(t, tt.expected, result.Error())
			assert.ErrorIs(t, result, tt.err)
		})
	}
}

func TestWrapf(t *testing.T) {
	assert.NoError(t, Wrapf(nil, "project %s", "web"))

	err := Wrapf(ErrProjectNotFound, "project %s in %s", "web", "demo.sln.yaml")
	require.Error(t, err)
	assert.Equal(t, "project web in demo.sln.yaml: project not found", err.Error())
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
