// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package slot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Low iteration count keeps the tests quick.
const testIterations = 1000

func TestSealedRoundTrip(t *testing.T) {
	t.Parallel()
	inner := NewMemory()
	s := &Sealed{Inner: inner, Passphrase: "hunter2", Iterations: testIterations}

	plaintext := []byte(`[{"id":"version-1-0","name":"v1"}]`)
	require.NoError(t, s.Write(plaintext))

	raw, err := inner.Read()
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "version-1-0")

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, kdfName, env.KDF)
	assert.Equal(t, testIterations, env.Iterations)
	assert.Equal(t, keyLength, env.KeyLength)
	assert.NotEmpty(t, env.Salt)

	got, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)

	assert.True(t, IsSealed(raw))
	assert.False(t, IsSealed(plaintext))
	assert.False(t, IsSealed([]byte("not json")))
}

func TestSealedWrongPassphrase(t *testing.T) {
	t.Parallel()
	inner := NewMemory()
	require.NoError(t, (&Sealed{Inner: inner, Passphrase: "right", Iterations: testIterations}).Write([]byte(`[]`)))

	_, err := (&Sealed{Inner: inner, Passphrase: "wrong"}).Read()
	assert.ErrorIs(t, err, ErrWrongPassphrase)
	assert.Error(t, Probe(&Sealed{Inner: inner, Passphrase: "wrong"}))
}

func TestSealedEmptyAndPlain(t *testing.T) {
	t.Parallel()

	_, err := (&Sealed{Inner: NewMemory(), Passphrase: "x"}).Read()
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = (&Sealed{Inner: NewMemory([]byte(`[]`)), Passphrase: "x"}).Read()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not sealed")
}

func TestSealedTruncatedCiphertext(t *testing.T) {
	t.Parallel()
	raw, err := json.Marshal(envelope{
		KDF:           kdfName,
		Salt:          "c2FsdA==",
		Iterations:    testIterations,
		KeyLength:     keyLength,
		EncryptedData: "AAAA",
	})
	require.NoError(t, err)

	_, err = (&Sealed{Inner: NewMemory(raw), Passphrase: "x"}).Read()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ciphertext too short")
}

func TestSealedRemoveAndString(t *testing.T) {
	t.Parallel()
	inner := NewMemory([]byte("x"))
	s := &Sealed{Inner: inner}
	assert.Equal(t, "sealed:memory", s.String())
	require.NoError(t, s.Remove())
	_, err := inner.Read()
	assert.ErrorIs(t, err, ErrEmpty)
}
