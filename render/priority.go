package render

// RenderPriority determines layer order. Lower values draw first
type RenderPriority int

const (
	PriorityBackground RenderPriority = iota
	PriorityGround
	PriorityMeshes
	PriorityUI
	PriorityOverlay
)
