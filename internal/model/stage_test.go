package model

import "testing"

// TestParseStage tests label resolution for wire codes and display labels.
func TestParseStage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		label    string
		expected Stage
	}{
		// Wire codes
		{"waiting_bus", StageWaitingBus},
		{"en_route_campus", StageEnRoute},
		{"at_campus_hub", StageAtCampusHub},
		{"delivered", StageDelivered},

		// Display labels as serialized by the service
		{"Waiting for package to reach bus station", StageWaitingBus},
		{"Package in our van en route to campus", StageEnRoute},
		{"Package at our campus hub", StageAtCampusHub},
		{"Package delivered to recipient", StageDelivered},

		// Anything else degrades to StageUnknown
		{"", StageUnknown},
		{"lost_in_transit", StageUnknown},
		{"DELIVERED", StageUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.label, func(t *testing.T) {
			t.Parallel()
			if got := ParseStage(tc.label); got != tc.expected {
				t.Errorf("ParseStage(%q) = %v, expected %v", tc.label, got, tc.expected)
			}
		})
	}
}

// TestStageOrdering tests that stages are ordered earliest to terminal.
func TestStageOrdering(t *testing.T) {
	t.Parallel()

	if StageWaitingBus >= StageEnRoute {
		t.Error("expected StageWaitingBus < StageEnRoute")
	}
	if StageEnRoute >= StageAtCampusHub {
		t.Error("expected StageEnRoute < StageAtCampusHub")
	}
	if StageAtCampusHub >= StageDelivered {
		t.Error("expected StageAtCampusHub < StageDelivered")
	}
	if !StageDelivered.IsTerminal() {
		t.Error("expected StageDelivered to be terminal")
	}
}

// TestStageIndex tests the index mapping for all stages.
func TestStageIndex(t *testing.T) {
	t.Parallel()

	for i, stage := range Stages() {
		if stage.Index() != i {
			t.Errorf("stage %v index = %d, expected %d", stage, stage.Index(), i)
		}
	}
	if StageUnknown.Index() != -1 {
		t.Errorf("StageUnknown index = %d, expected -1", StageUnknown.Index())
	}
}

// TestStageNext tests single-step stage sequencing.
func TestStageNext(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		stage    Stage
		expected Stage
	}{
		{StageWaitingBus, StageEnRoute},
		{StageEnRoute, StageAtCampusHub},
		{StageAtCampusHub, StageDelivered},
		// Terminal stage does not wrap
		{StageDelivered, StageDelivered},
		// Unknown stage stays unknown
		{StageUnknown, StageUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.stage.Code()+"_next", func(t *testing.T) {
			t.Parallel()
			if got := tc.stage.Next(); got != tc.expected {
				t.Errorf("%v.Next() = %v, expected %v", tc.stage, got, tc.expected)
			}
		})
	}
}

// TestProgressionReached tests the checklist semantics: all stages up to
// and including the current one are reached, later stages are not.
func TestProgressionReached(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		label         string
		expectedIndex int
	}{
		{"Waiting for package to reach bus station", 0},
		{"Package in our van en route to campus", 1},
		{"Package at our campus hub", 2},
		{"Package delivered to recipient", 3},
	}

	for _, tc := range testCases {
		t.Run(tc.label, func(t *testing.T) {
			t.Parallel()
			p := NewProgression(tc.label)

			if p.Index() != tc.expectedIndex {
				t.Fatalf("index = %d, expected %d", p.Index(), tc.expectedIndex)
			}
			if p.ReachedCount() != tc.expectedIndex+1 {
				t.Errorf("reached count = %d, expected %d", p.ReachedCount(), tc.expectedIndex+1)
			}
			for i := 0; i < StageCount; i++ {
				want := i <= tc.expectedIndex
				if p.Reached(i) != want {
					t.Errorf("Reached(%d) = %v, expected %v", i, p.Reached(i), want)
				}
			}
		})
	}
}

// TestProgressionUnrecognizedLabel tests the silent-degradation policy.
// An unknown label marks zero stages reached and raises no error.
func TestProgressionUnrecognizedLabel(t *testing.T) {
	t.Parallel()

	p := NewProgression("Package abducted by aliens")

	if p.Index() != -1 {
		t.Errorf("index = %d, expected -1", p.Index())
	}
	if p.ReachedCount() != 0 {
		t.Errorf("reached count = %d, expected 0", p.ReachedCount())
	}
	for i := 0; i < StageCount; i++ {
		if p.Reached(i) {
			t.Errorf("Reached(%d) = true, expected false", i)
		}
	}
	if p.Label != "Package abducted by aliens" {
		t.Errorf("raw label not preserved: %q", p.Label)
	}
}
