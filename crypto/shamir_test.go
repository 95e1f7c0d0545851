package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-sh/tessera-core/tesseraerr"
)

func withDeterministicReader(t *testing.T, seed byte) {
	t.Helper()
	original := reader
	counter := seed
	reader = func(b []byte) (int, error) {
		for i := range b {
			b[i] = counter
			counter++
		}
		return len(b), nil
	}
	t.Cleanup(func() { reader = original })
}

func TestShamirSplitReconstruct_RoundTrip(t *testing.T) {
	withDeterministicReader(t, 7)

	secret := []byte("tessera content set encryption key material!!!")
	shares, err := ShamirSplit(secret, 3, 5)
	require.Nil(t, err)
	require.Len(t, shares, 5)

	recovered, rerr := ShamirReconstruct(shares[:3], 3)
	require.Nil(t, rerr)
	assert.Equal(t, secret, recovered)

	recovered2, rerr2 := ShamirReconstruct([]ShamirShare{shares[0], shares[2], shares[4]}, 3)
	require.Nil(t, rerr2)
	assert.Equal(t, secret, recovered2)
}

func TestShamirReconstruct_InsufficientShares(t *testing.T) {
	withDeterministicReader(t, 1)

	secret := []byte("short secret")
	shares, err := ShamirSplit(secret, 4, 6)
	require.Nil(t, err)

	_, rerr := ShamirReconstruct(shares[:2], 4)
	require.NotNil(t, rerr)
	assert.True(t, errors.Is(rerr, tesseraerr.ErrInsufficientShares))
}

func TestShamirReconstruct_DuplicateIndices(t *testing.T) {
	withDeterministicReader(t, 3)

	secret := []byte("another secret")
	shares, err := ShamirSplit(secret, 2, 4)
	require.Nil(t, err)

	dup := []ShamirShare{shares[0], shares[0]}
	_, rerr := ShamirReconstruct(dup, 2)
	require.NotNil(t, rerr)
}

func TestShamirSplit_RejectsInvalidParameters(t *testing.T) {
	_, err := ShamirSplit([]byte("x"), 1, 5)
	assert.NotNil(t, err)

	_, err = ShamirSplit([]byte("x"), 6, 5)
	assert.NotNil(t, err)

	_, err = ShamirSplit(nil, 2, 5)
	assert.NotNil(t, err)
}
