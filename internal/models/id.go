package models

import (
	"math/rand"
	"strconv"
	"time"
)

const (
	base36      = "0123456789abcdefghijklmnopqrstuvwxyz"
	idSuffixLen = 9
)

// NewID returns a process-unique identifier of the form
// "<unix millis>-<9 base36 chars>". Collisions are improbable, not impossible.
func NewID() string {
	return newIDAt(time.Now())
}

func newIDAt(now time.Time) string {
	buf := strconv.AppendInt(nil, now.UnixMilli(), 10)
	buf = append(buf, '-')
	for i := 0; i < idSuffixLen; i++ {
		buf = append(buf, base36[rand.Intn(len(base36))])
	}
	return string(buf)
}
