package mixer

import (
	"log/slog"
	"os"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestComputeBrightnesses_MidRange(t *testing.T) {
	calc := BrightnessCalculator{
		WarmKelvin:       2700,
		ColdKelvin:       6500,
		TargetKelvin:     4600,
		TargetBrightness: 255,
		Priority:         PriorityMixed,
	}

	warm, cold := calc.ComputeBrightnesses(testLogger())

	if warm != 75 || cold != 180 {
		t.Errorf("Expected warm=75 cold=180, got warm=%d cold=%d", warm, cold)
	}

	// A mid-range target attenuates both emitters well below full output
	if warm >= BrightnessMax || cold >= BrightnessMax {
		t.Errorf("Expected both emitters below full output, got warm=%d cold=%d", warm, cold)
	}
}

func TestComputeBrightnesses_WarmBoundary(t *testing.T) {
	calc := BrightnessCalculator{
		WarmKelvin:       2700,
		ColdKelvin:       6500,
		TargetKelvin:     2700,
		TargetBrightness: 200,
		Priority:         PriorityMixed,
	}

	warm, cold := calc.ComputeBrightnesses(testLogger())

	if warm != 200 {
		t.Errorf("Expected warm=200 at the warm boundary, got %d", warm)
	}

	// No lower-bound clamp is applied: the cold channel drops to 0 here,
	// below the nominal minimum of 1
	if cold > 1 {
		t.Errorf("Expected near-zero cold contribution, got %d", cold)
	}
}

func TestComputeBrightnesses_ColdBoundary(t *testing.T) {
	calc := BrightnessCalculator{
		WarmKelvin:       2700,
		ColdKelvin:       6500,
		TargetKelvin:     6500,
		TargetBrightness: 200,
		Priority:         PriorityMixed,
	}

	warm, cold := calc.ComputeBrightnesses(testLogger())

	if cold != 200 {
		t.Errorf("Expected cold=200 at the cold boundary, got %d", cold)
	}

	if warm > 1 {
		t.Errorf("Expected near-zero warm contribution, got %d", warm)
	}
}

func TestComputeBrightnesses_SumMatchesTarget(t *testing.T) {
	for kelvin := 2700; kelvin <= 6500; kelvin += 50 {
		for _, brightness := range []int{1, 64, 128, 200, 255} {
			calc := BrightnessCalculator{
				WarmKelvin:       2700,
				ColdKelvin:       6500,
				TargetKelvin:     kelvin,
				TargetBrightness: brightness,
				Priority:         PriorityMixed,
			}

			warm, cold := calc.ComputeBrightnesses(testLogger())

			if warm > BrightnessMax || cold > BrightnessMax {
				t.Fatalf("kelvin=%d brightness=%d: output above ceiling (warm=%d cold=%d)",
					kelvin, brightness, warm, cold)
			}
			if warm < 0 || cold < 0 {
				t.Fatalf("kelvin=%d brightness=%d: negative output (warm=%d cold=%d)",
					kelvin, brightness, warm, cold)
			}

			sum := warm + cold
			if sum < brightness-1 || sum > brightness+1 {
				t.Fatalf("kelvin=%d brightness=%d: channels sum to %d", kelvin, brightness, sum)
			}
		}
	}
}

func TestComputeBrightnesses_PriorityDoesNotDifferentiate(t *testing.T) {
	// All three priorities currently share the same formula
	priorities := []Priority{PriorityBrightness, PriorityTemperature, PriorityMixed}

	var firstWarm, firstCold int
	for i, priority := range priorities {
		calc := BrightnessCalculator{
			WarmKelvin:       2700,
			ColdKelvin:       6500,
			TargetKelvin:     4000,
			TargetBrightness: 180,
			Priority:         priority,
		}

		warm, cold := calc.ComputeBrightnesses(testLogger())

		if i == 0 {
			firstWarm, firstCold = warm, cold
			continue
		}

		if warm != firstWarm || cold != firstCold {
			t.Errorf("Priority %s produced warm=%d cold=%d, expected warm=%d cold=%d",
				priority, warm, cold, firstWarm, firstCold)
		}
	}
}

func TestComputeBrightnesses_TargetBeyondColdReference(t *testing.T) {
	// Targets outside [warm, cold] are not validated; the ceiling clamp still
	// holds but the other channel can go negative
	calc := BrightnessCalculator{
		WarmKelvin:       2700,
		ColdKelvin:       6500,
		TargetKelvin:     8000,
		TargetBrightness: 255,
		Priority:         PriorityMixed,
	}

	warm, cold := calc.ComputeBrightnesses(testLogger())

	if cold != BrightnessMax {
		t.Errorf("Expected cold clamped to %d, got %d", BrightnessMax, cold)
	}
	if warm >= BrightnessMin {
		t.Errorf("Expected warm below the valid range for an out-of-range target, got %d", warm)
	}
}

func TestComputeBrightnesses_NilLogger(t *testing.T) {
	calc := BrightnessCalculator{
		WarmKelvin:       2700,
		ColdKelvin:       6500,
		TargetKelvin:     4600,
		TargetBrightness: 255,
		Priority:         PriorityMixed,
	}

	warm, cold := calc.ComputeBrightnesses(nil)

	if warm != 75 || cold != 180 {
		t.Errorf("Expected warm=75 cold=180, got warm=%d cold=%d", warm, cold)
	}
}
