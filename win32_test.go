package knet

import (
	"testing"

	"github.com/shindogauge/knet/win32"
	"github.com/stretchr/testify/require"
)

func TestParseWin32PropagatesFormatError(t *testing.T) {
	_, err := ParseWin32([]byte{0x00, 0x00, 0x00, 0x00})
	require.Error(t, err)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	require.ErrorIs(t, err, win32.ErrBadMagic)
}
