package broker

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Trade IDs are ULIDs stamped with the position's open time, so journal
// rows and audit lines sort by entry without an extra column.
var tradeIDs = newIDSource()

type idSource struct {
	mu      sync.Mutex
	entropy io.Reader
}

func newIDSource() *idSource {
	var seed int64
	if err := binary.Read(cryptorand.Reader, binary.LittleEndian, &seed); err != nil || seed == 0 {
		seed = time.Now().UnixNano()
	}
	// Monotonic entropy keeps IDs strictly increasing within the same
	// millisecond.
	return &idSource{entropy: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)}
}

func (s *idSource) next(openedAt time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(openedAt.UTC()), s.entropy).String()
}
