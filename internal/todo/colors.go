package todo

import "math/rand/v2"

// Palette is the fixed set of tag colors.
var Palette = [20]string{
	"#FFB3BA", "#FFDFBA", "#FFFFBA", "#BAFFC9", "#BAE1FF", "#B3D1FF", "#D3BAFF",
	"#FFC8E1", "#C8FFD4", "#FFE4B3", "#B3FFE0", "#FFEBCD", "#D9BAFF", "#FFD1BA",
	"#FFBAB3", "#B3FFBA", "#B3E5FF", "#FFC1C8", "#D1FFC1", "#FFD7BA",
}

// RandomSource picks an int in [0, n).
type RandomSource interface {
	IntN(n int) int
}

type defaultRandom struct{}

func (defaultRandom) IntN(n int) int { return rand.IntN(n) }

// InPalette reports whether color is one of the palette colors.
func InPalette(color string) bool {
	for _, c := range Palette {
		if c == color {
			return true
		}
	}
	return false
}

// pickColor chooses among palette colors no tag uses yet. Once every color is
// taken it chooses from the whole palette.
func pickColor(assigned map[string]string, rnd RandomSource) string {
	used := make(map[string]bool, len(assigned))
	for _, c := range assigned {
		used[c] = true
	}

	available := make([]string, 0, len(Palette))
	for _, c := range Palette {
		if !used[c] {
			available = append(available, c)
		}
	}
	if len(available) > 0 {
		return available[rnd.IntN(len(available))]
	}
	return Palette[rnd.IntN(len(Palette))]
}
