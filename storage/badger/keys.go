package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/compass/core"
)

const (
	repairRecordPrefix = "reprec"
	repairDatePrefix   = "repdat"
)

// makeRepairKey generates a key for a repair record by ID.
func makeRepairKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", repairRecordPrefix, id))
}

// makeRepairDateKey generates a composite key for the recency index.
// Format: prefix:timestamp:id
func makeRepairDateKey(timestamp time.Time, id core.ID) []byte {
	buf := makePartialRepairDateKey(timestamp)
	return binary.BigEndian.AppendUint64(buf, uint64(id))
}

// makePartialRepairDateKey generates a partial key for recency scans.
// Format: prefix:timestamp
func makePartialRepairDateKey(timestamp time.Time) []byte {
	prefix := []byte(repairDatePrefix + ":")
	buf := make([]byte, len(prefix), len(prefix)+16)
	copy(buf, prefix)
	// BigEndian so lexicographic order matches time order
	return binary.BigEndian.AppendUint64(buf, uint64(timestamp.UnixMicro()))
}
