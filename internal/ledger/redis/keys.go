package redis

import (
	"fmt"

	"github.com/rpswager/rpswager/internal/model"
)

// Key prefix for all ledger data
const keyPrefix = "rpswager:ledger"

// accountKey returns the Redis key holding a player account balance
func accountKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, id)
}

// escrowKey returns the Redis key holding an escrow balance
func escrowKey(handle model.EscrowHandle) string {
	return fmt.Sprintf("%s:escrow:%s", keyPrefix, handle)
}

// transferKey returns the Redis key marking a transfer ref as applied
func transferKey(ref string) string {
	return fmt.Sprintf("%s:transfer:%s", keyPrefix, ref)
}
