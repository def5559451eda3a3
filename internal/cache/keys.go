package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	QuestionSetTTL     = 24 * time.Hour
	RateLimitWindowTTL = time.Minute
)

// QuestionSetKey keys a generated question set by its prompt digest, so an
// identical submission reuses the previous model output.
func QuestionSetKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "questions:" + hex.EncodeToString(sum[:])
}

func RateLimitKey(userID uuid.UUID) string {
	return fmt.Sprintf("ratelimit:user:%s", userID)
}
