package uid

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sony/sonyflake"
)

// UID generates unique, roughly time ordered identifiers.
type UID interface {
	NextID() (uint64, error)
}

// epoch is the sonyflake start time, ids stay valid for ~174 years after it.
var epoch = time.Date(2022, 9, 23, 0, 0, 0, 0, time.UTC)

func NewSonyflake() (*sonyflake.Sonyflake, error) {
	gen := sonyflake.NewSonyflake(sonyflake.Settings{
		StartTime: epoch,
	})

	if gen == nil {
		return nil, fmt.Errorf("sonyflake cannot be initiated, check the machine private ip")
	}

	return gen, nil
}

// NextString returns the next id in base 36.
func NextString(gen UID) (string, error) {
	id, err := gen.NextID()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}

	return strconv.FormatUint(id, 36), nil
}

// Sequence is a UID backed by a counter. It is deterministic and used where the machine
// identity sonyflake needs is not available.
type Sequence struct {
	mu   sync.Mutex
	next uint64
}

func NewSequence(start uint64) *Sequence {
	return &Sequence{next: start}
}

func (s *Sequence) NextID() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	return s.next, nil
}

var _ UID = (*sonyflake.Sonyflake)(nil)
var _ UID = (*Sequence)(nil)
