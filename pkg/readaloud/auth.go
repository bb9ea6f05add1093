package readaloud

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// winEpochOffset is the offset between the Windows file-time epoch
	// (1601-01-01) and the Unix epoch, in seconds.
	winEpochOffset = 11644473600

	// ticksPerSecond converts seconds to 100-nanosecond file-time ticks.
	ticksPerSecond = 10_000_000

	// proofWindow is the rotation interval of the session proof.
	proofWindow = 300 * time.Second
)

// sessionProof derives the rotating Sec-MS-GEC value for the given
// instant: the uppercase SHA-256 of the trusted token concatenated to
// the file-time tick count, rounded down to the rotation window.
func sessionProof(token string, now time.Time) string {
	ticks := now.Unix() + winEpochOffset
	ticks -= ticks % int64(proofWindow/time.Second)
	ticks *= ticksPerSecond

	sum := sha256.Sum256([]byte(fmt.Sprintf("%d%s", ticks, token)))
	return strings.ToUpper(fmt.Sprintf("%x", sum))
}

// connectionID returns a fresh per-connection identifier: a UUID without
// dashes, as the service expects.
func connectionID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// deviceID returns a generated machine identifier for the handshake
// cookie. Any stable-looking opaque value satisfies the service.
func deviceID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
}
