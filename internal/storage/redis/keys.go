package redis

import (
	"fmt"

	"github.com/rpswager/rpswager/internal/model"
)

// Key prefix for all match-service data
const keyPrefix = "rpswager"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// matchKey returns the Redis key for a Match
func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}

// openMatchesIndexKey returns the Redis key for the SET of open match keys
func openMatchesIndexKey() string {
	return fmt.Sprintf("%s:idx:open_matches", keyPrefix)
}
