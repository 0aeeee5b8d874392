package mixer

// TurnOnSettings bundles everything the command publisher needs to turn on a
// single emitter. Constructed per computation and consumed immediately; never
// reused or mutated.
type TurnOnSettings struct {
	// EntityID is the emitter the settings apply to
	EntityID string

	// CommonData carries command parameters shared by both emitters.
	// Only the transition key is currently forwarded.
	CommonData map[string]int

	// Brightness is the resolved brightness, nil when the command should not
	// change the emitter's brightness
	Brightness *int
}
