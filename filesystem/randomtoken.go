package filesystem

import (
	"encoding/hex"

	"github.com/crashsafe/atomicfs/internal/random"
)

// randomTokenByteLength is the number of cryptographically random bytes
// used for the temp-file name suffix (before hex encoding).
const randomTokenByteLength = 12

// randomToken generates the random hex token used in temp file names. It
// routes through crypto/rand (via the internal/random wrapper), which
// already dispatches to the appropriate platform primitive under the hood
// (getrandom on Linux, getentropy/arc4random-backed sources on Darwin and
// other BSDs, ProcessPrng on Windows) and retries internally on transient
// interruption, so a single call here is equivalent to the retry loops the
// specification describes per platform.
func randomToken() (string, error) {
	buffer, err := random.New(randomTokenByteLength)
	if err != nil {
		return "", &RandomGenerationError{Err: err}
	}
	return hex.EncodeToString(buffer), nil
}
