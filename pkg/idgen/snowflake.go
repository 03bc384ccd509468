package idgen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

const (
	// 41 bits timestamp (ms since Epoch), 10 bits node, 12 bits sequence.
	nodeBits     = 10
	sequenceBits = 12

	maxNodeID   = -1 ^ (-1 << nodeBits)
	maxSequence = -1 ^ (-1 << sequenceBits)

	nodeShift      = sequenceBits
	timestampShift = sequenceBits + nodeBits

	// Epoch is 2024-01-01 00:00:00 UTC.
	Epoch = 1704067200000

	// MaxClockDrift is how far (ms) the clock may step back before Next fails.
	// Smaller steps reuse the last timestamp; they happen when a shared clock
	// falls back to the local one.
	MaxClockDrift = 10

	// keyWidth is the base-36 length of the largest 63-bit ID.
	keyWidth = 13
)

var (
	ErrNodeIDTooLarge = errors.New("node ID too large")
	ErrClockMovedBack = errors.New("clock moved backwards")
)

// Snowflake generates unique, time-ordered 64-bit IDs.
type Snowflake struct {
	mu       sync.Mutex
	clock    Clock
	nodeID   int64
	lastTime int64
	sequence int64
}

// New creates a generator for nodeID. A nil clock uses the system time.
func New(nodeID int64, clock Clock) (*Snowflake, error) {
	if nodeID < 0 || nodeID > int64(maxNodeID) {
		return nil, ErrNodeIDTooLarge
	}
	if clock == nil {
		clock = SystemClock{}
	}

	return &Snowflake{
		clock:    clock,
		nodeID:   nodeID,
		lastTime: -1,
	}, nil
}

// Next generates the next unique ID.
func (s *Snowflake) Next() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if now < s.lastTime {
		if s.lastTime-now > MaxClockDrift {
			return 0, fmt.Errorf("%w by %dms", ErrClockMovedBack, s.lastTime-now)
		}
		now = s.lastTime
	}

	if now == s.lastTime {
		s.sequence = (s.sequence + 1) & int64(maxSequence)
		if s.sequence == 0 {
			// Sequence exhausted, spin to the next millisecond.
			for now <= s.lastTime {
				now = s.clock.Now()
			}
		}
	} else {
		s.sequence = 0
	}
	s.lastTime = now

	return ((now - Epoch) << timestampShift) | (s.nodeID << nodeShift) | s.sequence, nil
}

// NextKey returns the next ID as fixed-width base 36, so keys sort in
// creation order.
func (s *Snowflake) NextKey() (string, error) {
	id, err := s.Next()
	if err != nil {
		return "", err
	}
	key := strconv.FormatInt(id, 36)
	if pad := keyWidth - len(key); pad > 0 {
		key = strings.Repeat("0", pad) + key
	}
	return key, nil
}
