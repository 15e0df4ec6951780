package entity

import "time"

// User is the sync identity derived from a recovery phrase. The id is an
// 8-char lowercase hex digest of the phrase-derived seed; the passphrase is
// stored alongside so a later registration with a colliding id can be told
// apart from a legitimate login.
type User struct {
	Id         string
	Passphrase string
	CreatedAt  time.Time
}
