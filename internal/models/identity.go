package models

import (
	"fmt"
	"math/big"
)

// UserState is the capability level of a caller
type UserState string

const (
	UserStateUnknown UserState = "unknown"
	UserStateUser    UserState = "user"
	UserStateAdmin   UserState = "admin"
)

// SessionID is a 128-bit session token. Its textual form is the decimal
// representation of the unsigned integer, which is what the cookie carries.
type SessionID [16]byte

// String returns the decimal form of the id
func (id SessionID) String() string {
	return new(big.Int).SetBytes(id[:]).String()
}

// ParseSessionID parses the decimal form of an unsigned 128-bit integer
func ParseSessionID(s string) (SessionID, error) {
	var id SessionID
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 || n.BitLen() > 128 {
		return id, fmt.Errorf("%w: invalid session id", ErrValidation)
	}
	n.FillBytes(id[:])
	return id, nil
}

// Identity is the resolved caller of a request
type Identity struct {
	State     UserState  `json:"user_state"`
	SessionID *SessionID `json:"-"`
}

// Anonymous returns the default identity used whenever no session resolves
func Anonymous() Identity {
	return Identity{State: UserStateUnknown}
}

// IsAdmin reports whether the identity carries admin rights
func (i Identity) IsAdmin() bool {
	return i.State == UserStateAdmin
}

// IsUser reports whether the identity is a plain authenticated user
func (i Identity) IsUser() bool {
	return i.State == UserStateUser
}
