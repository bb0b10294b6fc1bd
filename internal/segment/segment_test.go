package segment

import "testing"

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		in   []Range
		gap  float64
		want []Range
	}{
		{
			name: "gap within threshold merges",
			in:   []Range{{0, 5}, {5.2, 10}},
			gap:  1,
			want: []Range{{0, 10}},
		},
		{
			name: "gap beyond threshold stays split",
			in:   []Range{{0, 5}, {8, 10}},
			gap:  1,
			want: []Range{{0, 5}, {8, 10}},
		},
		{
			name: "unsorted input sorts first",
			in:   []Range{{8, 10}, {0, 5}},
			gap:  1,
			want: []Range{{0, 5}, {8, 10}},
		},
		{
			name: "overlapping ranges join",
			in:   []Range{{0, 6}, {4, 9}},
			gap:  0,
			want: []Range{{0, 9}},
		},
		{
			name: "contained range is absorbed",
			in:   []Range{{0, 10}, {2, 3}},
			gap:  0,
			want: []Range{{0, 10}},
		},
		{
			name: "chain of small gaps collapses to one",
			in:   []Range{{0, 1}, {1.5, 2}, {2.4, 3}},
			gap:  0.5,
			want: []Range{{0, 3}},
		},
		{
			name: "touching endpoints merge at zero gap",
			in:   []Range{{0, 5}, {5, 8}},
			gap:  0,
			want: []Range{{0, 8}},
		},
		{
			name: "single range passes through",
			in:   []Range{{3, 7}},
			gap:  10,
			want: []Range{{3, 7}},
		},
	}
	for _, tt := range tests {
		got := Merge(tt.in, tt.gap)
		if len(got) != len(tt.want) {
			t.Errorf("%s: got %d ranges %v, want %d %v", tt.name, len(got), got, len(tt.want), tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: range %d: got %v, want %v", tt.name, i, got[i], tt.want[i])
			}
		}
	}
}

func TestMergeEmptyInput(t *testing.T) {
	if got := Merge(nil, 1); got != nil {
		t.Errorf("Merge(nil): got %v, want nil", got)
	}
	if got := Merge([]Range{}, 1); got != nil {
		t.Errorf("Merge(empty): got %v, want nil", got)
	}
}

func TestMergeLeavesInputUntouched(t *testing.T) {
	in := []Range{{8, 10}, {0, 5}}
	Merge(in, 100)
	if in[0] != (Range{8, 10}) || in[1] != (Range{0, 5}) {
		t.Errorf("input mutated: %v", in)
	}
}
