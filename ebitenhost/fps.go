package ebitenhost

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in scene seconds, the overlay text is rebuilt.
const fpsRefresh = 0.5

// fpsCounter draws FPS and TPS in the top-left corner.
type fpsCounter struct {
	text       string
	lastUpdate float64
}

func (f *fpsCounter) draw(screen *ebiten.Image, elapsed float64) {
	if f.text == "" || elapsed-f.lastUpdate >= fpsRefresh || elapsed < f.lastUpdate {
		f.lastUpdate = elapsed
		f.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nt: %.2fs", ebiten.ActualFPS(), ebiten.ActualTPS(), elapsed)
	}
	ebitenutil.DebugPrint(screen, f.text)
}
