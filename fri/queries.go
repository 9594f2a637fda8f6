package fri

import (
	"encoding/binary"
	"slices"

	"github.com/teddyjfpender/circlestark/channel"
)

// Queries is a deduplicated, ascending batch of query positions into a
// domain of size 2^LogDomainSize.
type Queries struct {
	Positions     []int
	LogDomainSize int
}

// SampleQueries draws nQueries positions from the channel. Colliding
// draws are merged, so the result may hold fewer positions.
func SampleQueries(ch channel.Channel, logDomainSize, nQueries int) Queries {
	mask := uint32(1)<<logDomainSize - 1
	positions := make([]int, 0, nQueries)
	for len(positions) < nQueries {
		block := ch.DrawBytes()
		for off := 0; off+4 <= len(block) && len(positions) < nQueries; off += 4 {
			w := binary.LittleEndian.Uint32(block[off:])
			positions = append(positions, int(w&mask))
		}
	}
	slices.Sort(positions)
	return Queries{Positions: slices.Compact(positions), LogDomainSize: logDomainSize}
}

// Fold maps the queries through nFolds domain halvings, merging
// positions that land on the same folded point.
func (q Queries) Fold(nFolds int) Queries {
	if nFolds > q.LogDomainSize {
		panic("fri: folding queries beyond a size-1 domain")
	}
	positions := make([]int, 0, len(q.Positions))
	for _, pos := range q.Positions {
		folded := pos >> nFolds
		if len(positions) == 0 || positions[len(positions)-1] != folded {
			positions = append(positions, folded)
		}
	}
	return Queries{Positions: positions, LogDomainSize: q.LogDomainSize - nFolds}
}
