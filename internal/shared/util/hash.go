package util

import (
	"crypto/sha256"
	"encoding/hex"
)

const fingerprintHexLen = 12

// DocumentFingerprint returns a short stable identifier for document bytes,
// safe to log in place of any document content.
func DocumentFingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:fingerprintHexLen]
}
