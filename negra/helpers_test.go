package negra

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func regexpMust(t *testing.T, expr string) *regexp.Regexp {
	t.Helper()
	re, err := regexp.Compile(expr)
	require.NoError(t, err)
	return re
}
