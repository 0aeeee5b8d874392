package mqtt

import "fmt"

// Topic constants for the mixer agent
const (
	// Virtual mixed light commands (input)
	TopicMixerCommands = "automation/command/mixer/+"

	// Per-emitter light commands (output)
	TopicLightCommandBase = "automation/command/light"

	// Combined mixed light state (output)
	TopicMixerContextBase = "automation/context/mixer"
)

// MixerCommandTopic constructs the command topic for a mixed light
// Pattern: automation/command/mixer/{light_id}
func MixerCommandTopic(lightID string) string {
	return fmt.Sprintf("automation/command/mixer/%s", lightID)
}

// LightCommandTopic constructs the command topic for a single emitter
// Pattern: automation/command/light/{entity_id}
func LightCommandTopic(entityID string) string {
	return fmt.Sprintf("%s/%s", TopicLightCommandBase, entityID)
}

// MixerContextTopic constructs the combined state topic for a mixed light
// Pattern: automation/context/mixer/{light_id}
func MixerContextTopic(lightID string) string {
	return fmt.Sprintf("%s/%s", TopicMixerContextBase, lightID)
}
