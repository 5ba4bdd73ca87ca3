// internal/app/system/invitecode/invitecode.go

// Package invitecode generates the short human-shareable codes that grant
// join access to a group.
package invitecode

import (
	"crypto/rand"
)

// Length of generated codes.
const Length = 6

// alphabet omits 0/O and 1/I so codes survive being read aloud or
// hand-copied.
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// New returns a random uppercase code of Length characters.
//
// Uniqueness across groups is not guaranteed here; the group store retries
// against the unique invite-code index on collision.
func New() string {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails if the OS entropy source is broken.
		panic("invitecode: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf)
}
