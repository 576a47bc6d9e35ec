package dolevstrong

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr-shifu/dolev-strong/core/bit"
	"github.com/mr-shifu/dolev-strong/core/message"
	"github.com/mr-shifu/dolev-strong/core/party"
	"github.com/mr-shifu/dolev-strong/lib/round"
)

func TestHonestPropose(t *testing.T) {
	roster := party.NewIDSlice(4)
	a := newAgent(1, roster, nil)

	out, err := a.send(0)
	require.NoError(t, err)
	require.Len(t, out, 3, "one proposal per peer, none to self")

	for _, msg := range out {
		assert.Equal(t, round.Number(0), msg.Round)
		assert.Equal(t, party.ID(1), msg.From)
		assert.NotEqual(t, party.ID(1), msg.To)
		assert.Equal(t, bit.One, msg.Content.Value)
		assert.Equal(t, party.IDSlice{1}, msg.Content.Signers)
	}
}

func TestHonestForward(t *testing.T) {
	roster := party.NewIDSlice(3)
	a := newAgent(2, roster, nil)

	short, err := message.New(bit.One, 0)
	require.NoError(t, err)
	long, err := message.New(bit.One, 0, 1)
	require.NoError(t, err)
	require.True(t, a.receive(short))
	require.True(t, a.receive(long))

	// round 1 forwards only chains of length 1
	out, err := a.send(1)
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, msg := range out {
		assert.Equal(t, party.IDSlice{0, 2}, msg.Content.Signers)
	}

	// the stored original is untouched by forwarding, and the forwarder
	// retains the chain it signed
	stored := a.inbox.Messages()
	require.Len(t, stored, 3)
	assert.Equal(t, party.IDSlice{0}, stored[0].Signers)
	assert.Equal(t, party.IDSlice{0, 1}, stored[1].Signers)
	assert.Equal(t, party.IDSlice{0, 2}, stored[2].Signers)
}

func TestHonestForwardKeepsSignedChain(t *testing.T) {
	// A chain completing its (f+1)-th signature at the last round must land
	// in the forwarder's own extraction set, not only in its peers'.
	const f = 1
	a := newAgent(2, party.NewIDSlice(3), nil)

	msg, err := message.New(bit.Zero, 0)
	require.NoError(t, err)
	require.True(t, a.receive(msg))

	_, err = a.send(round.Number(f))
	require.NoError(t, err)

	assert.Equal(t, []bit.Bit{bit.Zero}, a.extraction(f))
	assert.Equal(t, bit.Zero, a.decide(f))
}

func TestReceiveDropsDuplicateSigner(t *testing.T) {
	a := newAgent(0, party.NewIDSlice(2), nil)

	bad := message.Msg{Value: bit.One, Signers: party.IDSlice{1, 1}}
	assert.False(t, a.receive(bad))
	assert.Equal(t, 0, a.inbox.Len())
}

func TestDecide(t *testing.T) {
	const f = 1
	tests := []struct {
		name  string
		inbox []message.Msg
		want  bit.Bit
	}{
		{
			"empty extraction set defaults to zero",
			nil,
			bit.Zero,
		},
		{
			"singleton extraction set",
			[]message.Msg{
				{Value: bit.One, Signers: party.IDSlice{0, 1}},
				{Value: bit.One, Signers: party.IDSlice{1, 0}},
			},
			bit.One,
		},
		{
			"conflicting extraction set defaults to zero",
			[]message.Msg{
				{Value: bit.One, Signers: party.IDSlice{0, 1}},
				{Value: bit.Zero, Signers: party.IDSlice{1, 0}},
			},
			bit.Zero,
		},
		{
			"short chains are ignored",
			[]message.Msg{
				{Value: bit.One, Signers: party.IDSlice{0}},
			},
			bit.Zero,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAgent(2, party.NewIDSlice(3), nil)
			for _, msg := range tt.inbox {
				require.True(t, a.receive(msg))
			}
			assert.Equal(t, tt.want, a.decide(f))
		})
	}
}

func TestFaultyDecideIsValid(t *testing.T) {
	a := newAgent(1, party.NewIDSlice(3), NewSilentAdversary(1, partyRand(42, 1)))
	for i := 0; i < 20; i++ {
		assert.True(t, a.decide(2).Valid())
	}
}

func TestSilentAdversaryWithholdsForwarding(t *testing.T) {
	a := newAgent(1, party.NewIDSlice(4), NewSilentAdversary(1, partyRand(7, 1)))

	msg, err := message.New(bit.One, 0)
	require.NoError(t, err)
	require.True(t, a.receive(msg))

	out, err := a.send(1)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSilentAdversaryProposesOneValueToAll(t *testing.T) {
	adv := NewSilentAdversary(2, partyRand(11, 2))
	peers := party.IDSlice{0, 1, 3}

	proposals := adv.Propose(peers)
	require.Len(t, proposals, len(peers))
	for _, p := range proposals[1:] {
		assert.Equal(t, proposals[0].Value, p.Value)
	}
}

func TestEquivocatingAdversaryProposesPerPeer(t *testing.T) {
	adv := NewEquivocatingAdversary(0, partyRand(3, 0))
	peers := party.NewIDSlice(8).Remove(0)

	proposals := adv.Propose(peers)
	require.Len(t, proposals, len(peers))
	covered := make(map[party.ID]struct{})
	for _, p := range proposals {
		assert.True(t, p.Value.Valid())
		covered[p.To] = struct{}{}
	}
	assert.Len(t, covered, len(peers), "every peer gets a proposal")
}
