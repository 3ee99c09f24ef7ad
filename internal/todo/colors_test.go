package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixedRandom struct {
	pick   int
	ranges []int
}

func (r *fixedRandom) IntN(n int) int {
	r.ranges = append(r.ranges, n)
	return r.pick % n
}

func TestPickColor(t *testing.T) {
	tests := []struct {
		name      string
		assigned  map[string]string
		pick      int
		wantRange int
		want      string
	}{
		{
			name:      "empty registry",
			assigned:  map[string]string{},
			pick:      0,
			wantRange: 20,
			want:      Palette[0],
		},
		{
			name:      "skips used colors",
			assigned:  map[string]string{"a": Palette[0], "b": Palette[1]},
			pick:      0,
			wantRange: 18,
			want:      Palette[2],
		},
		{
			name:      "random among available",
			assigned:  map[string]string{"a": Palette[0]},
			pick:      4,
			wantRange: 19,
			want:      Palette[5],
		},
		{
			name:      "colors outside the palette do not count",
			assigned:  map[string]string{"a": "#000000"},
			pick:      0,
			wantRange: 20,
			want:      Palette[0],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rnd := &fixedRandom{pick: tt.pick}
			got := pickColor(tt.assigned, rnd)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []int{tt.wantRange}, rnd.ranges)
		})
	}
}

func TestPickColor_ExhaustedPalette(t *testing.T) {
	assigned := map[string]string{}
	for i, c := range Palette {
		assigned[string(rune('a'+i))] = c
	}

	rnd := &fixedRandom{pick: 7}
	got := pickColor(assigned, rnd)
	assert.True(t, InPalette(got))
	assert.Equal(t, []int{len(Palette)}, rnd.ranges)

	// Default source still lands inside the palette.
	for range 50 {
		assert.True(t, InPalette(pickColor(assigned, defaultRandom{})))
	}
}

func TestInPalette(t *testing.T) {
	assert.True(t, InPalette("#FFB3BA"))
	assert.False(t, InPalette("#ffb3ba"))
	assert.False(t, InPalette(""))
}
