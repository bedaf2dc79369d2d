// Package id generates lexicographically sortable identifiers.
//
// Run ids are ULIDs: 48 bits of millisecond time followed by 80 random bits,
// encoded as 26 Crockford base32 characters. Sorting run ids as strings
// sorts runs by start time, which keeps uploaded reports in order.
package id

import (
	"crypto/rand"
	"errors"
	"strings"
	"time"
)

// Crockford's Base32 alphabet (excludes I, L, O, U to avoid confusion).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const ulidLen = 26

// ErrInvalidULID is returned by Time for malformed ids.
var ErrInvalidULID = errors.New("id: invalid ULID")

// NewULID returns a ULID for the current time.
func NewULID() string {
	return NewULIDAt(time.Now())
}

// NewULIDAt returns a ULID whose time component is t.
func NewULIDAt(t time.Time) string {
	var b [16]byte
	ms := uint64(t.UnixMilli())
	for i := range 6 {
		b[i] = byte(ms >> (40 - 8*i))
	}
	// crypto/rand.Read never returns an error
	_, _ = rand.Read(b[6:])

	return encode(b)
}

// Time extracts the creation time of a ULID with millisecond precision.
func Time(ulid string) (time.Time, error) {
	if len(ulid) != ulidLen {
		return time.Time{}, ErrInvalidULID
	}

	var ms uint64
	for _, c := range strings.ToUpper(ulid[:10]) {
		v := strings.IndexRune(crockfordBase32, c)
		if v < 0 {
			return time.Time{}, ErrInvalidULID
		}
		ms = ms<<5 | uint64(v)
	}
	return time.UnixMilli(int64(ms)), nil
}

// encode writes 128 bits as 26 base32 characters, most significant first.
// The first character carries only the top 3 bits.
func encode(b [16]byte) string {
	var out [ulidLen]byte
	hi := uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
	lo := uint64(b[8])<<56 | uint64(b[9])<<48 | uint64(b[10])<<40 | uint64(b[11])<<32 |
		uint64(b[12])<<24 | uint64(b[13])<<16 | uint64(b[14])<<8 | uint64(b[15])

	for i := ulidLen - 1; i >= 0; i-- {
		out[i] = crockfordBase32[lo&0x1F]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}
