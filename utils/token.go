package utils

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// GenerateToken issues an opaque session token: a random UUIDv4 rendered as
// 32 lowercase hex characters (122 bits of entropy). The token carries no
// decodable structure; validity is established only by lookup against the
// stored user record.
func GenerateToken() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
