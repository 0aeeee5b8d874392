package mixer

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/saaga0h/tandem/pkg/redis"
)

// TTL for cached light state. A pair untouched for a day starts from
// defaults on the next command.
const stateTTL = 24 * time.Hour

// LightState is the cached emitter state of one mixed light
type LightState struct {
	State          string
	WarmBrightness int
	ColdBrightness int
	ColorTemp      int
	UpdatedAt      int64
}

// StateStore caches per-light emitter state in Redis so the agent can report
// the combined temperature and reuse the last targets across commands.
type StateStore struct {
	redis  redis.Client
	logger *slog.Logger
}

// NewStateStore creates a new state store
func NewStateStore(redisClient redis.Client, logger *slog.Logger) *StateStore {
	return &StateStore{
		redis:  redisClient,
		logger: logger,
	}
}

// Save caches the state of a mixed light
func (s *StateStore) Save(ctx context.Context, lightID string, state *LightState) error {
	key := redis.MixerStateKey(lightID)

	fields := map[string]string{
		"state":           state.State,
		"warm_brightness": strconv.Itoa(state.WarmBrightness),
		"cold_brightness": strconv.Itoa(state.ColdBrightness),
		"color_temp":      strconv.Itoa(state.ColorTemp),
		"updated_at":      strconv.FormatInt(state.UpdatedAt, 10),
	}

	for field, value := range fields {
		if err := s.redis.HSet(ctx, key, field, value); err != nil {
			return fmt.Errorf("failed to cache state for %s: %w", lightID, err)
		}
	}

	if err := s.redis.Expire(ctx, key, stateTTL); err != nil {
		s.logger.Warn("Failed to set TTL on light state", "light_id", lightID, "error", err)
	}

	s.logger.Debug("Cached light state",
		"light_id", lightID,
		"state", state.State,
		"warm_brightness", state.WarmBrightness,
		"cold_brightness", state.ColdBrightness)

	return nil
}

// Load returns the cached state of a mixed light, or nil when nothing is cached
func (s *StateStore) Load(ctx context.Context, lightID string) (*LightState, error) {
	key := redis.MixerStateKey(lightID)

	fields, err := s.redis.HGetAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load state for %s: %w", lightID, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	state := &LightState{State: fields["state"]}
	state.WarmBrightness = parseIntField(fields, "warm_brightness")
	state.ColdBrightness = parseIntField(fields, "cold_brightness")
	state.ColorTemp = parseIntField(fields, "color_temp")

	if v, ok := fields["updated_at"]; ok {
		if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
			state.UpdatedAt = ts
		}
	}

	return state, nil
}

func parseIntField(fields map[string]string, name string) int {
	v, ok := fields[name]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
