package smtpgw

import (
	"crypto/subtle"
	"errors"
)

// AuthFunc validates the credentials the MTA presents when it opens a
// session. The gateway holds a single credential pair, there is no
// per-sender identity at this layer; the sender of each message is
// resolved later from its From header.
type AuthFunc func(username, password string) error

// StaticCredentials returns an AuthFunc checking against one configured
// username/password pair.
func StaticCredentials(username, password string) AuthFunc {
	return func(user, pass string) error {
		userOK := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1
		if !userOK || !passOK {
			return errors.New("invalid credentials")
		}
		return nil
	}
}
