package mixer

import "testing"

func TestParsePriority(t *testing.T) {
	cases := []struct {
		input   string
		want    Priority
		wantErr bool
	}{
		{"brightness", PriorityBrightness, false},
		{"temperature", PriorityTemperature, false},
		{"mixed", PriorityMixed, false},
		{"", "", true},
		{"BRIGHTNESS", "", true},
		{"balanced", "", true},
	}

	for _, tc := range cases {
		got, err := ParsePriority(tc.input)

		if tc.wantErr {
			if err == nil {
				t.Errorf("ParsePriority(%q): expected error, got %q", tc.input, got)
			}
			continue
		}

		if err != nil {
			t.Errorf("ParsePriority(%q): unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePriority(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
