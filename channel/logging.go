package channel

import (
	"encoding/hex"

	"github.com/rs/zerolog"

	"github.com/teddyjfpender/circlestark/field"
	"github.com/teddyjfpender/circlestark/logger"
)

// LoggingChannel wraps a Channel and emits a debug event for every
// transcript interaction. Useful when chasing a prover/verifier
// transcript divergence.
type LoggingChannel struct {
	inner Channel
	log   zerolog.Logger
}

var _ Channel = (*LoggingChannel)(nil)

// NewLoggingChannel wraps inner with the global logger.
func NewLoggingChannel(inner Channel) *LoggingChannel {
	log := logger.Logger().With().Str("component", "channel").Logger()
	return &LoggingChannel{inner: inner, log: log}
}

func (c *LoggingChannel) MixFelts(felts []field.QM31) {
	c.log.Debug().Int("count", len(felts)).Msg("mix felts")
	c.inner.MixFelts(felts)
}

func (c *LoggingChannel) MixUint64(v uint64) {
	c.log.Debug().Uint64("value", v).Msg("mix uint64")
	c.inner.MixUint64(v)
}

func (c *LoggingChannel) MixDigest(d [32]byte) {
	c.log.Debug().Str("digest", hex.EncodeToString(d[:])).Msg("mix digest")
	c.inner.MixDigest(d)
}

func (c *LoggingChannel) DrawFelt() field.QM31 {
	felt := c.inner.DrawFelt()
	c.log.Debug().Stringer("felt", felt).Msg("draw felt")
	return felt
}

func (c *LoggingChannel) DrawFelts(n int) []field.QM31 {
	felts := c.inner.DrawFelts(n)
	c.log.Debug().Int("count", len(felts)).Msg("draw felts")
	return felts
}

func (c *LoggingChannel) DrawBytes() [32]byte {
	b := c.inner.DrawBytes()
	c.log.Debug().Str("bytes", hex.EncodeToString(b[:])).Msg("draw bytes")
	return b
}

func (c *LoggingChannel) Time() ChannelTime {
	return c.inner.Time()
}
