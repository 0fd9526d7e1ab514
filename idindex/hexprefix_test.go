package idindex_test

import (
	"testing"

	"github.com/calvinalkan/revset/idindex"
	"github.com/stretchr/testify/require"
)

func Test_HexPrefix_Matches_EvenDigitPrefix(t *testing.T) {
	p, err := idindex.NewHexPrefix("0a")
	require.NoError(t, err)

	require.True(t, p.Matches(hexKey{0x0a, 0xbc}))
	require.False(t, p.Matches(hexKey{0x0b, 0xbc}))
}

func Test_HexPrefix_Matches_OddDigitPrefix(t *testing.T) {
	p, err := idindex.NewHexPrefix("0a5")
	require.NoError(t, err)

	require.True(t, p.Matches(hexKey{0x0a, 0x5f}))
	require.True(t, p.Matches(hexKey{0x0a, 0x50}))
	require.False(t, p.Matches(hexKey{0x0a, 0x6f}))
}

func Test_HexPrefix_Matches_Rejects_ShorterKeys(t *testing.T) {
	p, err := idindex.NewHexPrefix("0a5b")
	require.NoError(t, err)

	require.False(t, p.Matches(hexKey{0x0a}))
}

func Test_NewHexPrefix_Rejects_NonHexCharacters(t *testing.T) {
	_, err := idindex.NewHexPrefix("0g")
	require.ErrorIs(t, err, idindex.ErrInvalidHexDigit)
}
