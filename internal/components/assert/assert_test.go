package assert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotNil(t *testing.T) {
	require.NotPanics(t, func() { NotNil(1, "value") })
	require.PanicsWithValue(t, "expected tel to be not nil", func() { NotNil(nil, "tel") })
}

func TestNotEmptyStr(t *testing.T) {
	require.NotPanics(t, func() { NotEmptyStr("RUBIN", "nickname") })
	require.PanicsWithValue(t, "expected nickname to be a non-empty string", func() { NotEmptyStr("", "nickname") })
}
