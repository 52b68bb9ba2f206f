package analytics

var palette = []string{
	"#36A2EB",
	"#FFCE56",
	"#4BC0C0",
	"#FF6384",
	"#9966FF",
	"#FF9F40",
}

// PaletteColor returns the color for position i. The palette wraps, so the
// same position always gets the same color.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

func colorsFor(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = PaletteColor(i)
	}
	return colors
}
