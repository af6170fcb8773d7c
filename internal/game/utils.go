package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/iburimskiy/constellation/internal/config"
)

var background = color.RGBA{R: config.BackgroundR, G: config.BackgroundG, B: config.BackgroundB, A: 255}

// formatFrameTime formats a frame interval as "16.7ms (60 fps)".
func formatFrameTime(d time.Duration) string {
	if d <= 0 {
		return "--"
	}
	ms := float64(d) / float64(time.Millisecond)
	return fmt.Sprintf("%.1fms (%.0f fps)", ms, 1000/ms)
}
