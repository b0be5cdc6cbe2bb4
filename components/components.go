// Package components defines the ECS components of the garden scene.
package components

// Position is a plant's anchor inside the viewport.
type Position struct {
	X, Y float32
}

// Plant marks an entity as one player's garden plant. Stage advances on
// level-ups and drives the drawn size.
type Plant struct {
	PlayerIdx uint8
	Stage     uint8
}

// Sway animates a gentle idle motion per plant.
type Sway struct {
	Phase float32
	Speed float32
}
