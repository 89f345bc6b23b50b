// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package softpipe

import (
	"math"
	"testing"
)

func TestVec4_Div(t *testing.T) {
	if got := (Vec4{1, 2, 3, 4}).Div(4); got != (Vec4{0.25, 0.5, 0.75, 1}) {
		t.Errorf("Div = %+v, want (0.25,0.5,0.75,1)", got)
	}
}

func TestPoint2(t *testing.T) {
	if got := Point2(3, -4); got != (Vec4{3, -4, 0, 1}) {
		t.Errorf("Point2(3,-4) = %+v, want (3,-4,0,1)", got)
	}
}

func TestVec4_IsFinite(t *testing.T) {
	tests := []struct {
		name string
		v    Vec4
		want bool
	}{
		{"zero", Vec4{}, true},
		{"regular", Vec4{1, -2, 3, 4}, true},
		{"NaN x", Vec4{math.NaN(), 0, 0, 1}, false},
		{"Inf w", Vec4{0, 0, 0, math.Inf(1)}, false},
		{"-Inf z", Vec4{0, 0, math.Inf(-1), 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.want {
				t.Errorf("IsFinite(%+v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}
