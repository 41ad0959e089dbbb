// Package export renders a board as a JSON document and pushes it to an
// external visualizer.
package export

import (
	"dicewars/engine"
	"dicewars/game"
)

// Document is the render surface of a board.
type Document struct {
	Session string        `json:"session,omitempty"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Cells   []int         `json:"cells"` // area id per cell, 0 = background
	Areas   []AreaDoc     `json:"areas"`
	Players []game.Player `json:"players"`
	Turn    int           `json:"turn"`
	Current int           `json:"current"`
}

// AreaDoc is one active area as drawn by a client.
type AreaDoc struct {
	ID        int         `json:"id"`
	Owner     int         `json:"owner"`
	Dice      int         `json:"dice"`
	Size      int         `json:"size"`
	Bounds    game.Bounds `json:"bounds"`
	Centroid  game.Point  `json:"centroid"`
	LabelCell int         `json:"label_cell"`
	Trace     []game.Edge `json:"trace"`
	Neighbors []int       `json:"neighbors"`
}

// FromRegistry builds the document for a board and its player table.
func FromRegistry(reg *game.Registry, players game.Players) Document {
	doc := Document{
		Players: players.Clone(),
		Current: game.Unowned,
	}
	if top := reg.Topology(); top != nil {
		doc.Width, doc.Height = top.Width(), top.Height()
		doc.Cells = make([]int, top.Cells())
		for c := range doc.Cells {
			doc.Cells[c] = reg.CellArea(c)
		}
	}

	for _, id := range reg.ActiveIDs() {
		a := reg.Area(id)
		doc.Areas = append(doc.Areas, AreaDoc{
			ID:        a.ID,
			Owner:     a.Owner,
			Dice:      a.Dice,
			Size:      a.Size,
			Bounds:    a.Bounds,
			Centroid:  a.Centroid,
			LabelCell: a.LabelCell,
			Trace:     a.Trace,
			Neighbors: reg.Neighbors(id),
		})
	}
	return doc
}

// FromEngine builds the document for a running session.
func FromEngine(e *engine.Engine) Document {
	doc := FromRegistry(e.Registry, e.Players)
	doc.Session = e.ID.String()
	doc.Turn = e.Turns()
	doc.Current = e.CurrentPlayer()
	return doc
}
