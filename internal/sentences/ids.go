package sentences

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
)

// NewID returns a random identifier for a sentence. A v4 UUID is used when
// the crypto source is available, otherwise a KSUID built from a
// pseudo-random payload.
func NewID() string {
	id, err := uuid.NewRandom()
	if err == nil {
		return id.String()
	}
	return fallbackID()
}

func fallbackID() string {
	payload := make([]byte, 16)
	for i := range payload {
		payload[i] = byte(rand.IntN(256))
	}
	id, err := ksuid.FromParts(time.Now(), payload)
	if err != nil {
		// FromParts only fails on a wrong payload length
		panic(err)
	}
	return id.String()
}
