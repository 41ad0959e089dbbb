// meta/meta.go
package meta

// XMax is the default board width in cells.
const XMax = 28

// YMax is the default board height in cells.
const YMax = 32

// AreaMax bounds area ids; id 0 is reserved for background.
const AreaMax = 32

// Players is the default number of seats.
const Players = 7

// DicePerArea is the average garrison placed on each area at setup.
const DicePerArea = 3

// MaxDice caps the garrison of a single area.
const MaxDice = 8

// StockMax caps a player's reinforcement stock.
const StockMax = 64

// GrowthTarget is the flood fill target size of a new area.
const GrowthTarget = 8

// MinGrowth is the smallest accepted flood fill target.
const MinGrowth = 3

// DiscardSize is the largest area size that gets discarded after growth.
const DiscardSize = 5

// LabelEdgePenalty is added to the centroid distance of boundary cells.
const LabelEdgePenalty = 4

// TraceLimit bounds a boundary walk.
const TraceLimit = 100

// MaxTurns caps a self-play game.
const MaxTurns = 500

// MaxAttempts caps map generation retries.
const MaxAttempts = 50
