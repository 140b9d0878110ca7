package bot

import (
	"sync"
	"time"
)

// PendingTable remembers, per chat, a prompt awaiting the user's next
// message. Instance-scoped (no package globals) and TTL-evicted so an
// abandoned prompt cannot pin memory forever.
type PendingTable struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[int64]pendingItem
}

type pendingItem struct {
	action  string
	expires time.Time
}

func NewPendingTable(ttl time.Duration) *PendingTable {
	return &PendingTable{
		ttl:   ttl,
		items: make(map[int64]pendingItem),
	}
}

func (p *PendingTable) Put(chatID int64, action string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prune()
	p.items[chatID] = pendingItem{action: action, expires: time.Now().Add(p.ttl)}
}

// Take removes and returns the pending action for a chat; expired entries
// are a miss.
func (p *PendingTable) Take(chatID int64) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	item, ok := p.items[chatID]
	if !ok {
		return "", false
	}
	delete(p.items, chatID)
	if time.Now().After(item.expires) {
		return "", false
	}
	return item.action, true
}

func (p *PendingTable) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prune()
	return len(p.items)
}

func (p *PendingTable) prune() {
	now := time.Now()
	for id, item := range p.items {
		if now.After(item.expires) {
			delete(p.items, id)
		}
	}
}
