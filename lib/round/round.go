// Package round holds the plumbing shared by the protocol engine and its
// harness: round numbers and the delivery envelope.
package round

import (
	"fmt"

	"github.com/mr-shifu/dolev-strong/core/message"
	"github.com/mr-shifu/dolev-strong/core/party"
)

// Number is a protocol round, 0 through the fault bound f.
type Number uint16

// Message is the envelope for one point-to-point delivery: sender, receiver,
// the round it was sent in, and the signed content.
type Message struct {
	Round   Number      `cbor:"round"`
	From    party.ID    `cbor:"from"`
	To      party.ID    `cbor:"to"`
	Content message.Msg `cbor:"content"`
}

func (m Message) String() string {
	return fmt.Sprintf("round %d: %d -> %d %s", m.Round, m.From, m.To, m.Content)
}
