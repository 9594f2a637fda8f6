package channel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teddyjfpender/circlestark/channel"
	"github.com/teddyjfpender/circlestark/field"
)

func TestBlake2bChannel(t *testing.T) {
	t.Run("Determinism", func(t *testing.T) {
		a := channel.NewBlake2bChannel()
		b := channel.NewBlake2bChannel()

		a.MixUint64(42)
		b.MixUint64(42)
		assert.Equal(t, a.DrawFelt(), b.DrawFelt())
		assert.Equal(t, a.DrawBytes(), b.DrawBytes())
		assert.Equal(t, a.DrawFelts(5), b.DrawFelts(5))
	})

	t.Run("Divergence", func(t *testing.T) {
		a := channel.NewBlake2bChannel()
		b := channel.NewBlake2bChannel()

		a.MixUint64(1)
		b.MixUint64(2)
		assert.NotEqual(t, a.DrawFelt(), b.DrawFelt())
	})

	t.Run("DrawsAdvance", func(t *testing.T) {
		ch := channel.NewBlake2bChannel()
		assert.NotEqual(t, ch.DrawFelt(), ch.DrawFelt())
		assert.NotEqual(t, ch.DrawBytes(), ch.DrawBytes())
	})

	t.Run("MixResetsDraws", func(t *testing.T) {
		a := channel.NewBlake2bChannel()
		a.MixUint64(7)
		first := a.DrawFelt()

		// drawing does not feed back into the mixed state
		b := channel.NewBlake2bChannel()
		b.MixUint64(7)
		b.DrawFelt()
		b.MixDigest([32]byte{})

		c := channel.NewBlake2bChannel()
		c.MixUint64(7)
		c.MixDigest([32]byte{})
		assert.Equal(t, b.DrawFelt(), c.DrawFelt())
		_ = first
	})

	t.Run("MixFeltsChangesState", func(t *testing.T) {
		a := channel.NewBlake2bChannel()
		b := channel.NewBlake2bChannel()
		a.MixFelts([]field.QM31{field.NewQM31(1, 2, 3, 4)})
		b.MixFelts([]field.QM31{field.NewQM31(1, 2, 3, 5)})
		assert.NotEqual(t, a.Digest(), b.Digest())
	})

	t.Run("FeltsReduced", func(t *testing.T) {
		ch := channel.NewBlake2bChannel()
		for i := 0; i < 100; i++ {
			for _, limb := range ch.DrawFelt().Uint32s() {
				assert.Less(t, limb, uint32(field.Modulus))
			}
		}
	})

	t.Run("Time", func(t *testing.T) {
		ch := channel.NewBlake2bChannel()
		assert.Equal(t, channel.ChannelTime{}, ch.Time())

		ch.MixUint64(1)
		assert.Equal(t, channel.ChannelTime{NChallenges: 1}, ch.Time())

		ch.DrawBytes()
		ch.DrawBytes()
		assert.Equal(t, channel.ChannelTime{NChallenges: 1, NSent: 2}, ch.Time())

		ch.MixDigest([32]byte{})
		assert.Equal(t, channel.ChannelTime{NChallenges: 2, NSent: 0}, ch.Time())
	})
}

func TestLoggingChannel(t *testing.T) {
	// the wrapper must be transparent
	plain := channel.NewBlake2bChannel()
	wrapped := channel.NewLoggingChannel(channel.NewBlake2bChannel())

	plain.MixUint64(9)
	wrapped.MixUint64(9)
	assert.Equal(t, plain.DrawFelt(), wrapped.DrawFelt())

	plain.MixFelts([]field.QM31{field.NewQM31(1, 0, 0, 0)})
	wrapped.MixFelts([]field.QM31{field.NewQM31(1, 0, 0, 0)})
	assert.Equal(t, plain.DrawBytes(), wrapped.DrawBytes())
	assert.Equal(t, plain.Time(), wrapped.Time())
}
