// SPDX-License-Identifier: MPL-2.0

package container

import "testing"

func TestExitCodeHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code     int
		wantHint bool
	}{
		{code: 0, wantHint: false},
		{code: 1, wantHint: false},
		{code: 2, wantHint: false},
		{code: 125, wantHint: true},
		{code: 126, wantHint: true},
		{code: 127, wantHint: true},
		{code: 137, wantHint: false},
	}

	for _, tt := range tests {
		hint := ExitCodeHint(tt.code)
		if got := hint != ""; got != tt.wantHint {
			t.Errorf("ExitCodeHint(%d) = %q, want hint presence %v", tt.code, hint, tt.wantHint)
		}
	}
}

func TestIsEngineFailure(t *testing.T) {
	t.Parallel()

	for _, code := range []int{125, 126, 127} {
		if !IsEngineFailure(code) {
			t.Errorf("IsEngineFailure(%d) = false, want true", code)
		}
	}
	for _, code := range []int{0, 1, 2, 124, 128, 137} {
		if IsEngineFailure(code) {
			t.Errorf("IsEngineFailure(%d) = true, want false", code)
		}
	}
}
