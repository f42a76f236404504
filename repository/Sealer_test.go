package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealerRoundTrip(t *testing.T) {
	s := NewSealer("secret")
	plain := []byte(`{"phone":"79991234567"}`)

	box, err := s.Seal(plain)
	require.NoError(t, err)
	assert.NotContains(t, string(box), "79991234567")

	out, err := s.Open(box)
	require.NoError(t, err)
	assert.Equal(t, plain, out)
}

func TestSealerNoncesDiffer(t *testing.T) {
	s := NewSealer("secret")
	a, err := s.Seal([]byte("same"))
	require.NoError(t, err)
	b, err := s.Seal([]byte("same"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSealerWrongKey(t *testing.T) {
	box, err := NewSealer("one").Seal([]byte("data"))
	require.NoError(t, err)

	_, err = NewSealer("two").Open(box)
	assert.ErrorIs(t, err, ErrBrokenSeal)

	_, err = NewSealer("one").Open(box[:10])
	assert.ErrorIs(t, err, ErrBrokenSeal)
}

func TestNilSealerPassesThrough(t *testing.T) {
	var s *Sealer = NewSealer("")
	assert.Nil(t, s)

	box, err := s.Seal([]byte("plain"))
	require.NoError(t, err)
	assert.Equal(t, []byte("plain"), box)
	out, err := s.Open(box)
	require.NoError(t, err)
	assert.Equal(t, []byte("plain"), out)
}
