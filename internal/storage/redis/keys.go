package redis

import (
	"fmt"

	"github.com/mcoot/blockgame-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "blockgame"

// sessionKey returns the Redis key for a Session
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// sessionIndexKey returns the Redis key for the SET of known session IDs
func sessionIndexKey() string {
	return fmt.Sprintf("%s:idx:sessions", keyPrefix)
}

// bestScoreKey returns the Redis key for a variant's best score
func bestScoreKey(variant model.Variant) string {
	return fmt.Sprintf("%s:best:%s", keyPrefix, variant)
}
