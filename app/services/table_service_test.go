package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableTokenRoundTrip(t *testing.T) {
	token, err := EncodeTableToken("A3")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.NotContains(t, token, "A3", "table name must not appear in plaintext")

	table, err := DecodeTableToken(token)
	require.NoError(t, err)
	assert.Equal(t, "A3", table)
}

func TestDecodeTableTokenRejectsGarbage(t *testing.T) {
	_, err := DecodeTableToken("not-a-token")
	assert.ErrorIs(t, err, ErrBadTableToken)

	_, err = DecodeTableToken("")
	assert.ErrorIs(t, err, ErrBadTableToken)
}

func TestEncodeTableTokenRequiresName(t *testing.T) {
	_, err := EncodeTableToken("")
	assert.Error(t, err)
}

func TestTableLink(t *testing.T) {
	link, err := TableLink("https://warung.example.com", "Meja 7")
	require.NoError(t, err)
	assert.Contains(t, link, "https://warung.example.com/?t=")
	assert.NotContains(t, link, " ")
}
