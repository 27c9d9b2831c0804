package core

import "testing"

func TestPositionStep(t *testing.T) {
	origin := Pos(3, 3)

	tests := []struct {
		dir      Dir
		expected Position
	}{
		{DirUp, Pos(2, 3)},
		{DirDown, Pos(4, 3)},
		{DirLeft, Pos(3, 2)},
		{DirRight, Pos(3, 4)},
		{DirNone, Pos(3, 3)},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			result := origin.Step(tc.dir)
			if result != tc.expected {
				t.Errorf("Step(%s) = %s, expected %s", tc.dir, result, tc.expected)
			}
		})
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in       string
		expected Position
		wantErr  bool
	}{
		{"1,1", Pos(1, 1), false},
		{"(5,5)", Pos(5, 5), false},
		{"-1,7", Pos(-1, 7), false},
		{"1, 2", Pos(1, 2), false},
		{"1", Position{}, true},
		{"a,b", Position{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			result, err := ParsePosition(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("ParsePosition(%q) succeeded, expected error", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePosition(%q) failed: %v", tc.in, err)
			}
			if result != tc.expected {
				t.Errorf("ParsePosition(%q) = %s, expected %s", tc.in, result, tc.expected)
			}
		})
	}
}
