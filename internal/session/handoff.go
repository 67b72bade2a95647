package session

import (
	"context"
	"sync"
	"time"
)

// DefaultHandoffTTL bounds how long a pre-selected image waits to be consumed.
const DefaultHandoffTTL = 15 * time.Minute

// HandoffSlot passes an already-selected image reference from the profile
// screen into the generation workflow. Write-once by the sender, read-once-
// and-cleared by the receiver.
type HandoffSlot interface {
	Put(ctx context.Context, sessionID, imageRef string) error
	Take(ctx context.Context, sessionID string) (string, bool, error)
}

type memorySlot struct {
	value string
	until time.Time
}

// MemoryHandoff is the single-node implementation backed by an in-process map.
type MemoryHandoff struct {
	mu    sync.Mutex
	ttl   time.Duration
	slots map[string]memorySlot
}

func NewMemoryHandoff(ttl time.Duration) *MemoryHandoff {
	if ttl <= 0 {
		ttl = DefaultHandoffTTL
	}
	return &MemoryHandoff{ttl: ttl, slots: make(map[string]memorySlot)}
}

func (h *MemoryHandoff) Put(ctx context.Context, sessionID, imageRef string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.slots[sessionID] = memorySlot{value: imageRef, until: time.Now().Add(h.ttl)}
	return nil
}

func (h *MemoryHandoff) Take(ctx context.Context, sessionID string) (string, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	slot, ok := h.slots[sessionID]
	if !ok {
		return "", false, nil
	}
	delete(h.slots, sessionID)
	if time.Now().After(slot.until) {
		return "", false, nil
	}
	return slot.value, true, nil
}

var _ HandoffSlot = (*MemoryHandoff)(nil)
