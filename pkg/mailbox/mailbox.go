package mailbox

import (
	"sync"

	"github.com/mr-shifu/dolev-strong/core/message"
)

// Mailbox stores the distinct messages a participant has received.
type Mailbox interface {
	// Store files msg and reports whether it was inserted. Invalid messages
	// (duplicate signer) and messages already present by (value, signers)
	// identity are dropped silently; redundant delivery is an expected
	// protocol event, not an error.
	Store(msg message.Msg) bool
	Contains(msg message.Msg) bool
	// Messages returns the stored messages in insertion order.
	Messages() []message.Msg
	Len() int
}

var _ Mailbox = (*InMemoryMailbox)(nil)

// InMemoryMailbox keys messages by their digest so membership checks stay
// O(1) as the roster grows.
type InMemoryMailbox struct {
	lock sync.Mutex
	keys map[message.Key]struct{}
	msgs []message.Msg
}

func NewInMemoryMailbox() *InMemoryMailbox {
	return &InMemoryMailbox{
		keys: make(map[message.Key]struct{}),
	}
}

func (mb *InMemoryMailbox) Store(msg message.Msg) bool {
	if !msg.Valid() {
		return false
	}

	mb.lock.Lock()
	defer mb.lock.Unlock()

	key := msg.Key()
	if _, ok := mb.keys[key]; ok {
		return false
	}
	mb.keys[key] = struct{}{}
	mb.msgs = append(mb.msgs, msg)
	return true
}

func (mb *InMemoryMailbox) Contains(msg message.Msg) bool {
	mb.lock.Lock()
	defer mb.lock.Unlock()

	_, ok := mb.keys[msg.Key()]
	return ok
}

func (mb *InMemoryMailbox) Messages() []message.Msg {
	mb.lock.Lock()
	defer mb.lock.Unlock()

	out := make([]message.Msg, len(mb.msgs))
	copy(out, mb.msgs)
	return out
}

func (mb *InMemoryMailbox) Len() int {
	mb.lock.Lock()
	defer mb.lock.Unlock()

	return len(mb.msgs)
}
