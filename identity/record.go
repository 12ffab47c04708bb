package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

type (
	// Token identifies a user and doubles as its session id
	Token string

	UserRecord struct {
		ID       Token  `json:"id" msgpack:"id"`
		Email    string `json:"email" msgpack:"email"`
		Password string `json:"password" msgpack:"password"`
	}

	// Store maps tokens to user records.
	//
	// Each call is safe for concurrent use, but callers composing more than
	// one call (eg.: scan for an email and then insert) get no atomicity.
	Store interface {
		Put(ctx context.Context, rec UserRecord) error
		Get(ctx context.Context, id Token) (UserRecord, bool, error)
		FindByEmail(ctx context.Context, email string) (UserRecord, bool, error)
		FindByCredentials(ctx context.Context, email, password string) (UserRecord, bool, error)
		Delete(ctx context.Context, id Token) error
		List(ctx context.Context) ([]UserRecord, error)
	}
)

const (
	tokenSize = 8
)

// NewToken reads 64 bits from entropy and returns them hex encoded.
// When entropy is nil, crypto/rand is used.
func NewToken(entropy io.Reader) (Token, error) {
	if entropy == nil {
		entropy = rand.Reader
	}
	var buf [tokenSize]byte
	_, err := io.ReadFull(entropy, buf[:])
	if err != nil {
		return "", fmt.Errorf("unable to generate token, cause %w", err)
	}
	return Token(hex.EncodeToString(buf[:])), nil
}

func (t Token) String() string {
	return string(t)
}
