package ringraster

import "github.com/srwiley/rasterx"

// JoinMode type to specify how segments join.
type JoinMode uint8

// JoinMode constants determine how stroke segments bridge the gap at a join
const (
	Round JoinMode = iota
	Bevel
	Miter
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	case Miter:
		return "Miter"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	ButtCap CapMode = iota
	SquareCap
	RoundCap
)

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "ButtCap"
	case SquareCap:
		return "SquareCap"
	case RoundCap:
		return "RoundCap"
	default:
		return "<unknown CapMode>"
	}
}

// StrokeOptions parametrize a stroke. Widths are in pixels.
type StrokeOptions struct {
	LineWidth  float64
	MiterLimit float64 // the miter cutoff value for Miter joins; zero means 4
	Cap        CapMode // used at both ends
	Join       JoinMode
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		Round: rasterx.Round,
		Bevel: rasterx.Bevel,
		Miter: rasterx.Miter,
	}

	capToFunc = [...]rasterx.CapFunc{
		ButtCap:   rasterx.ButtCap,
		SquareCap: rasterx.SquareCap,
		RoundCap:  rasterx.RoundCap,
	}
)
