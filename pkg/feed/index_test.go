package feed

import (
	"strings"
	"testing"

	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndex(t *testing.T) {
	idx, err := ParseIndexFromReader(strings.NewReader(`{"format_version":"1","packages":[
		{"id":"jQuery","version":"1.6","url":"a.zip"},
		{"id":"jquery","version":"bad","url":"b.zip"}]}`))
	require.NoError(t, err)
	require.Len(t, idx.FindPackages("JQuery"), 2)
	assert.Nil(t, idx.FindPackages("jquery")[1].GetVersion())
	assert.Equal(t, "jQuery@1.6", idx.Packages[0].Key())
}

func TestParseIndex_Invalid(t *testing.T) {
	_, err := ParseIndex([]byte(`{"packages":[]}`))
	assert.ErrorIs(t, err, errors.ErrFeedIndexInvalid)

	_, err = ParseIndex([]byte(`{`))
	assert.ErrorIs(t, err, errors.ErrFeedIndexInvalid)
}

func TestParseIndexFromFile_Missing(t *testing.T) {
	_, err := ParseIndexFromFile("/nonexistent/index.json")
	assert.Error(t, err)
}
