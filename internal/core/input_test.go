package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionLeft)
	f.Set(ActionAutopilot)
	if !f.Has(ActionLeft) || !f.Has(ActionAutopilot) {
		t.Errorf("Has() missed a set action: %+v", f)
	}
	if f.Has(ActionUp) {
		t.Error("Has(ActionUp) = true, expected false")
	}

	f.Unset(ActionLeft)
	if f.Has(ActionLeft) {
		t.Error("Unset(ActionLeft) did not remove it")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear() left actions behind")
	}
}

func TestInputFrameIgnoresNone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionNone)
	f.Set(Action(200))

	if !f.Empty() {
		t.Error("ActionNone and unknown actions should not be stored")
	}
	if f.Has(ActionNone) {
		t.Error("Has(ActionNone) = true, expected false")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:      "None",
		ActionUp:        "Up",
		ActionAutopilot: "Autopilot",
		ActionQuit:      "Quit",
		Action(99):      "Unknown",
	}
	for a, expected := range tests {
		if got := a.String(); got != expected {
			t.Errorf("Action(%d).String() = %q, expected %q", a, got, expected)
		}
	}
}
