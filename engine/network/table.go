package network

import (
	"fmt"

	"github.com/spaghettifunk/lumina/engine/containers"
	"github.com/spaghettifunk/lumina/engine/core"
	"github.com/spaghettifunk/lumina/engine/renderer/metadata"
)

// MAX_EMITTERS is the size of the one-byte emitter id space.
const MAX_EMITTERS = 256

type Mailbox = containers.Mailbox[metadata.Colour]

/**
 * @brief Maps emitter ids 0..N-1 to their mailboxes. Built once before any
 * connection is accepted and never modified afterwards, so it is shared by
 * the network workers and the render thread without locking.
 */
type EmitterTable struct {
	mailboxes []*Mailbox
}

func NewEmitterTable(count int) (*EmitterTable, error) {
	if count < 0 || count > MAX_EMITTERS {
		return nil, fmt.Errorf("%w: %d", core.ErrTooManyEmitters, count)
	}
	t := &EmitterTable{mailboxes: make([]*Mailbox, count)}
	for i := range t.mailboxes {
		t.mailboxes[i] = containers.NewMailbox[metadata.Colour]()
	}
	return t, nil
}

// Len is the number of configured emitters.
func (t *EmitterTable) Len() int {
	return len(t.mailboxes)
}

// Mailbox returns emitter id's mailbox, or nil when id is out of range.
func (t *EmitterTable) Mailbox(id int) *Mailbox {
	if id < 0 || id >= len(t.mailboxes) {
		return nil
	}
	return t.mailboxes[id]
}

// Deliver posts the record's colour to its emitter. Unknown ids are dropped
// and reported as false.
func (t *EmitterTable) Deliver(r Record) bool {
	mb := t.Mailbox(int(r.ID))
	if mb == nil {
		return false
	}
	mb.Post(r.Colour())
	return true
}
