// Package mixer computes how to split a requested color temperature and
// brightness across a fixed warm emitter and a fixed cold emitter, and wires
// that computation into the MQTT command plane.
package mixer

import "fmt"

// Brightness bounds shared by both emitters
const (
	BrightnessMin = 1
	BrightnessMax = 255
)

// Priority indicates what to favor when a requested temperature and
// brightness pair cannot be reproduced within the brightness range of both
// emitters. All three variants currently route through the same mixing
// formula; the value is carried and logged so the policy can be
// differentiated later without changing the wire format.
type Priority string

const (
	// PriorityBrightness maintains the target brightness, at the expense of the temperature
	PriorityBrightness Priority = "brightness"
	// PriorityTemperature maintains the target temperature, at the expense of the brightness
	PriorityTemperature Priority = "temperature"
	// PriorityMixed targets a mix of both temperature and brightness
	PriorityMixed Priority = "mixed"
)

// ParsePriority converts a string to a Priority
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityBrightness, PriorityTemperature, PriorityMixed:
		return Priority(s), nil
	default:
		return "", fmt.Errorf("unknown priority: %q", s)
	}
}
