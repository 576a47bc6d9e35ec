package message

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
	"github.com/zeebo/blake3"

	"github.com/mr-shifu/dolev-strong/core/bit"
	"github.com/mr-shifu/dolev-strong/core/party"
)

// ErrDuplicateSigner is returned when a signer chain contains the same party
// twice. Such a message is invalid and must never be stored.
var ErrDuplicateSigner = errors.New("message: duplicate signer in chain")

// Msg is a proposed bit together with the ordered chain of parties that have
// signed and forwarded it. Msg is a value type: forwarding produces a new
// value and never mutates the original, so one instance can be reused across
// many outgoing sends.
type Msg struct {
	Value   bit.Bit       `cbor:"value"`
	Signers party.IDSlice `cbor:"signers"`
}

// New constructs a message signed by the given chain.
func New(value bit.Bit, signers ...party.ID) (Msg, error) {
	ids := party.IDSlice(signers).Copy()
	if !ids.Distinct() {
		return Msg{}, errors.Wrapf(ErrDuplicateSigner, "signers %v", ids)
	}
	return Msg{Value: value, Signers: ids}, nil
}

// WithSigner returns a copy of m with id appended to the signer chain.
// Appending an id that already signed is idempotent: the result is an equal
// message, not an error. The receiver is unchanged.
func (m Msg) WithSigner(id party.ID) Msg {
	if m.Signers.Contains(id) {
		return Msg{Value: m.Value, Signers: m.Signers.Copy()}
	}
	signers := make(party.IDSlice, 0, len(m.Signers)+1)
	signers = append(signers, m.Signers...)
	signers = append(signers, id)
	return Msg{Value: m.Value, Signers: signers}
}

// Valid reports whether m carries a domain bit and a non-empty,
// duplicate-free signer chain.
func (m Msg) Valid() bool {
	return m.Value.Valid() && len(m.Signers) > 0 && m.Signers.Distinct()
}

// Equal compares value and signer chain. Signer order is part of a message's
// identity because it records the forwarding path.
func (m Msg) Equal(other Msg) bool {
	return m.Value == other.Value && m.Signers.Equal(other.Signers)
}

// Key is the dedup identity of a message.
type Key [32]byte

// Key digests (value, signer chain) so mailboxes can test membership in O(1).
func (m Msg) Key() Key {
	buf := make([]byte, 1+8*len(m.Signers))
	buf[0] = byte(m.Value)
	for i, id := range m.Signers {
		binary.BigEndian.PutUint64(buf[1+8*i:], uint64(id))
	}
	return Key(blake3.Sum256(buf))
}

func (m Msg) String() string {
	return fmt.Sprintf("<%s, signers=%v>", m.Value, m.Signers)
}
