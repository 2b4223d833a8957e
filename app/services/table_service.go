package services

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/putrawardana/warungsaji/pkg/crypt"
)

// ErrBadTableToken is returned for tokens that fail to decrypt or
// decode.
var ErrBadTableToken = errors.New("invalid table token")

type tableClaim struct {
	Table    string `json:"t"`
	IssuedAt int64  `json:"iat"`
}

// EncodeTableToken wraps a table name in an encrypted token for QR
// links, so guests cannot claim arbitrary tables by editing the URL.
func EncodeTableToken(table string) (string, error) {
	if table == "" {
		return "", fmt.Errorf("table name is empty")
	}
	return crypt.EncryptJSON(tableClaim{Table: table, IssuedAt: time.Now().Unix()})
}

// DecodeTableToken returns the table name carried by the token.
func DecodeTableToken(token string) (string, error) {
	var claim tableClaim
	if err := crypt.DecryptJSON(token, &claim); err != nil {
		return "", ErrBadTableToken
	}
	if claim.Table == "" {
		return "", ErrBadTableToken
	}
	return claim.Table, nil
}

// TableLink builds the storefront URL a table QR code points at.
func TableLink(storeURL, table string) (string, error) {
	token, err := EncodeTableToken(table)
	if err != nil {
		return "", err
	}
	return storeURL + "/?t=" + url.QueryEscape(token), nil
}
