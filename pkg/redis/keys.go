package redis

import "fmt"

// Key construction helpers for mixer state

// MixerStateKey returns the key for the cached emitter state of a mixed light (hash)
// Pattern: mixer:state:{light_id}
func MixerStateKey(lightID string) string {
	return fmt.Sprintf("mixer:state:%s", lightID)
}
