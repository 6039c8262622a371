// Package identifier produces collision resistant string identifiers
// for entities that do not have a database assigned ID yet, for example
// generation runs. The format is "{prefix}_{unix millis}_{random suffix}".
package identifier

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

const (
	alphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffixLength = 9
)

// New returns a new identifier with the given prefix.
func New(prefix string) string {
	var suffix strings.Builder
	for range suffixLength {
		suffix.WriteByte(alphabet[rand.IntN(len(alphabet))])
	}

	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix.String())
}
