package mixer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/saaga0h/tandem/pkg/config"
	"github.com/saaga0h/tandem/pkg/mqtt"
)

// Agent subscribes to virtual mixed light commands, computes the per-emitter
// brightness split and publishes the resulting emitter commands.
type Agent struct {
	mqtt     mqtt.Client
	state    *StateStore
	history  *TransitionStore
	registry *Registry
	cfg      *config.Config
	logger   *slog.Logger
}

// commandMessage is the payload of a mixed light command
type commandMessage struct {
	State      string `json:"state"`
	Brightness *int   `json:"brightness,omitempty"`
	ColorTemp  *int   `json:"color_temp,omitempty"`
	Transition *int   `json:"transition,omitempty"`
}

// emitterCommand is the payload published to a single emitter
type emitterCommand struct {
	State      string `json:"state"`
	Brightness *int   `json:"brightness,omitempty"`
	Transition *int   `json:"transition,omitempty"`
}

// NewAgent creates a new mixer agent
func NewAgent(mqttClient mqtt.Client, state *StateStore, history *TransitionStore, registry *Registry, cfg *config.Config, logger *slog.Logger) *Agent {
	return &Agent{
		mqtt:     mqttClient,
		state:    state,
		history:  history,
		registry: registry,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start starts the mixer agent and begins processing commands
func (a *Agent) Start(ctx context.Context) error {
	a.logger.Info("Starting mixer agent",
		"service_name", a.cfg.ServiceName,
		"lights", a.registry.Len(),
		"default_brightness", a.cfg.DefaultBrightness)

	// Connect to MQTT broker
	if err := a.mqtt.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to MQTT: %w", err)
	}

	// Subscribe to mixed light commands
	if err := a.mqtt.Subscribe(mqtt.TopicMixerCommands, 0, a.handleCommand); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", mqtt.TopicMixerCommands, err)
	}
	a.logger.Info("Subscribed to mixer commands", "topic", mqtt.TopicMixerCommands)

	a.logger.Info("Mixer agent started and ready")

	// Block until context is cancelled
	<-ctx.Done()
	a.logger.Info("Mixer agent stopping")

	return nil
}

// Stop gracefully stops the mixer agent
func (a *Agent) Stop() error {
	a.logger.Info("Stopping mixer agent")
	a.mqtt.Disconnect()
	a.logger.Info("Mixer agent stopped")
	return nil
}

// handleCommand handles an incoming mixed light command
func (a *Agent) handleCommand(msg mqtt.Message) {
	topic := msg.Topic()
	payload := msg.Payload()

	// Extract light id from topic: automation/command/mixer/{light_id}
	parts := strings.Split(topic, "/")
	if len(parts) != 4 {
		a.logger.Warn("Invalid mixer command topic format", "topic", topic)
		return
	}
	lightID := parts[3]

	pair, ok := a.registry.Get(lightID)
	if !ok {
		a.logger.Warn("Command for unknown light", "light_id", lightID)
		return
	}

	var cmd commandMessage
	if err := json.Unmarshal(payload, &cmd); err != nil {
		a.logger.Error("Failed to parse mixer command",
			"light_id", lightID,
			"error", err)
		return
	}

	a.logger.Debug("Received mixer command",
		"light_id", lightID,
		"state", cmd.State)

	ctx := context.Background()

	switch cmd.State {
	case "on":
		a.turnOn(ctx, pair, &cmd)
	case "off":
		a.turnOff(ctx, pair, &cmd)
	default:
		a.logger.Warn("Unknown command state",
			"light_id", lightID,
			"state", cmd.State)
	}
}

// turnOn resolves the command targets, computes the split and drives both emitters
func (a *Agent) turnOn(ctx context.Context, pair LightPair, cmd *commandMessage) {
	previous, err := a.state.Load(ctx, pair.ID)
	if err != nil {
		a.logger.Warn("Failed to load cached state", "light_id", pair.ID, "error", err)
	}

	brightness := a.resolveBrightness(cmd, previous)
	kelvin := a.resolveColorTemp(cmd, previous, pair)

	calculator := BrightnessCalculator{
		WarmKelvin:       pair.WarmKelvin,
		ColdKelvin:       pair.ColdKelvin,
		TargetKelvin:     kelvin,
		TargetBrightness: brightness,
		Priority:         pair.Priority,
	}
	warm, cold := calculator.ComputeBrightnesses(a.logger)

	common := map[string]int{}
	if cmd.Transition != nil {
		common["transition"] = *cmd.Transition
	}

	settings := []TurnOnSettings{
		{EntityID: pair.WarmEntity, CommonData: common, Brightness: &warm},
		{EntityID: pair.ColdEntity, CommonData: common, Brightness: &cold},
	}

	for _, s := range settings {
		if err := a.publishTurnOn(s); err != nil {
			a.logger.Error("Failed to publish emitter command",
				"light_id", pair.ID,
				"entity", s.EntityID,
				"error", err)
			return
		}
	}

	now := time.Now()
	state := &LightState{
		State:          "on",
		WarmBrightness: warm,
		ColdBrightness: cold,
		ColorTemp:      kelvin,
		UpdatedAt:      now.UnixMilli(),
	}
	if err := a.state.Save(ctx, pair.ID, state); err != nil {
		a.logger.Warn("Failed to cache light state", "light_id", pair.ID, "error", err)
	}

	// Record the transition for auditing; the command has already been
	// published so a storage failure must not undo it
	transition := &Transition{
		LightID:             pair.ID,
		RequestedKelvin:     kelvin,
		RequestedBrightness: brightness,
		Priority:            pair.Priority,
		WarmBrightness:      warm,
		ColdBrightness:      cold,
		CreatedAt:           now,
	}
	if err := a.history.RecordTransition(ctx, transition); err != nil {
		a.logger.Warn("Failed to record transition", "light_id", pair.ID, "error", err)
	}

	reported := TemperatureCalculator{
		WarmBrightness: warm,
		WarmKelvin:     pair.WarmKelvin,
		ColdBrightness: cold,
		ColdKelvin:     pair.ColdKelvin,
	}.CurrentTemperature()

	a.publishContext(pair.ID, "on", brightness, reported, warm, cold)

	a.logger.Info("Mixed light turned on",
		"light_id", pair.ID,
		"target_kelvin", kelvin,
		"target_brightness", brightness,
		"warm_brightness", warm,
		"cold_brightness", cold,
		"reported_kelvin", reported)
}

// turnOff turns off both emitters
func (a *Agent) turnOff(ctx context.Context, pair LightPair, cmd *commandMessage) {
	off := emitterCommand{State: "off", Transition: cmd.Transition}

	for _, entity := range []string{pair.WarmEntity, pair.ColdEntity} {
		if err := a.publishEmitter(entity, off); err != nil {
			a.logger.Error("Failed to publish emitter command",
				"light_id", pair.ID,
				"entity", entity,
				"error", err)
			return
		}
	}

	previous, err := a.state.Load(ctx, pair.ID)
	if err != nil {
		a.logger.Warn("Failed to load cached state", "light_id", pair.ID, "error", err)
	}

	// Keep the last color temperature so a bare turn-on restores it
	colorTemp := 0
	if previous != nil {
		colorTemp = previous.ColorTemp
	}

	state := &LightState{
		State:     "off",
		ColorTemp: colorTemp,
		UpdatedAt: time.Now().UnixMilli(),
	}
	if err := a.state.Save(ctx, pair.ID, state); err != nil {
		a.logger.Warn("Failed to cache light state", "light_id", pair.ID, "error", err)
	}

	a.publishContext(pair.ID, "off", 0, colorTemp, 0, 0)

	a.logger.Info("Mixed light turned off", "light_id", pair.ID)
}

// resolveBrightness picks the target brightness: command value, cached
// combined level, then the configured default
func (a *Agent) resolveBrightness(cmd *commandMessage, previous *LightState) int {
	if cmd.Brightness != nil {
		return *cmd.Brightness
	}

	if previous != nil && previous.State == "on" {
		// The channels sum back to the combined brightness they were split from
		combined := previous.WarmBrightness + previous.ColdBrightness
		if combined > BrightnessMax {
			combined = BrightnessMax
		}
		if combined >= BrightnessMin {
			return combined
		}
	}

	return a.cfg.DefaultBrightness
}

// resolveColorTemp picks the target temperature: command value, cached value,
// then the circadian default
func (a *Agent) resolveColorTemp(cmd *commandMessage, previous *LightState, pair LightPair) int {
	if cmd.ColorTemp != nil {
		return *cmd.ColorTemp
	}

	if previous != nil && previous.ColorTemp > 0 {
		return previous.ColorTemp
	}

	return CircadianTemperature(time.Now(), a.cfg.Latitude, a.cfg.Longitude, pair.WarmKelvin, pair.ColdKelvin)
}

// publishTurnOn publishes a turn-on command for a single emitter
func (a *Agent) publishTurnOn(settings TurnOnSettings) error {
	cmd := emitterCommand{
		State:      "on",
		Brightness: settings.Brightness,
	}
	if v, ok := settings.CommonData["transition"]; ok {
		cmd.Transition = &v
	}

	return a.publishEmitter(settings.EntityID, cmd)
}

// publishEmitter publishes a command to one emitter
func (a *Agent) publishEmitter(entityID string, cmd emitterCommand) error {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal emitter command: %w", err)
	}

	topic := mqtt.LightCommandTopic(entityID)
	if err := a.mqtt.Publish(topic, 0, false, payload); err != nil {
		return fmt.Errorf("failed to publish command to %s: %w", topic, err)
	}

	a.logger.Debug("Published emitter command", "topic", topic)
	return nil
}

// publishContext publishes the combined light state for downstream consumers
func (a *Agent) publishContext(lightID, state string, brightness, colorTemp, warm, cold int) {
	contextMsg := map[string]interface{}{
		"source":          "mixer-agent",
		"light_id":        lightID,
		"state":           state,
		"brightness":      brightness,
		"warm_brightness": warm,
		"cold_brightness": cold,
		"timestamp":       time.Now().Format(time.RFC3339),
	}

	if colorTemp > 0 {
		contextMsg["color_temp"] = colorTemp
	} else {
		contextMsg["color_temp"] = nil
	}

	topic := mqtt.MixerContextTopic(lightID)
	payload, err := json.Marshal(contextMsg)
	if err != nil {
		a.logger.Error("Failed to marshal context message", "light_id", lightID, "error", err)
		return
	}

	if err := a.mqtt.Publish(topic, 0, false, payload); err != nil {
		a.logger.Error("Failed to publish context", "topic", topic, "error", err)
		return
	}

	a.logger.Debug("Published mixer context", "topic", topic)
}
