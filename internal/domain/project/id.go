package project

import (
	"fmt"
	"time"
)

const ownerPrefixLen = 6

// NewID derives a project id from the post-increment counter, the block time
// and the first six runes of the caller. The counter alone makes it unique.
func NewID(count uint64, blockTime time.Time, caller string) string {
	prefix := []rune(caller)
	if len(prefix) > ownerPrefixLen {
		prefix = prefix[:ownerPrefixLen]
	}
	return fmt.Sprintf("proj-%d-%d-%s", count, blockTime.Unix(), string(prefix))
}
