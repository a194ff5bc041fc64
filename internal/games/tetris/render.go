package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

const (
	hudHeight = 2 // status line + separator
	cellWidth = 2 // each grid cell is drawn as "[]"
)

// BoardSize returns the screen area needed to draw the framed grid.
func (g *Game) BoardSize() (w, h int) {
	return g.grid.Width()*cellWidth + 2, g.grid.Height() + 2
}

// Render draws the HUD, the framed grid and the active piece.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	boardW, boardH := g.BoardSize()
	if dst.Width() < boardW || dst.Height() < boardH+hudHeight {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", boardW, boardH+hudHeight))
		return
	}

	frame := core.NewRect((dst.Width()-boardW)/2, hudHeight+(dst.Height()-hudHeight-boardH)/2, boardW, boardH)
	dst.DrawBox(frame, core.ColorGray)

	originX, originY := frame.X+1, frame.Y+1
	for y := 0; y < g.grid.Height(); y++ {
		for x := 0; x < g.grid.Width(); x++ {
			if cell := g.grid.At(x, y); cell.Filled {
				drawBlock(dst, originX+x*cellWidth, originY+y, cell.Color)
			}
		}
	}

	if p, ok := g.ActivePiece(); ok {
		for _, pt := range p.Points() {
			drawBlock(dst, originX+pt.X*cellWidth, originY+pt.Y, p.Color)
		}
	}

	switch {
	case g.gameOver:
		renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func drawBlock(dst *core.Screen, x, y int, c core.Color) {
	dst.SetColored(x, y, '[', c)
	dst.SetColored(x+1, y, ']', c)
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	status := "Playing"
	switch {
	case g.gameOver:
		status = "Game Over"
	case g.paused:
		status = "Paused"
	}
	hud := fmt.Sprintf(" %s | Pieces: %d | %s", g.Title(), g.locked, status)
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)

	for x := 0; x < dst.Width(); x++ {
		dst.SetColored(x, 1, '─', core.ColorGray)
	}
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := core.Max(len(line1), len(line2)) + 4
	boxH := 4
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		for x := box.X + 1; x < box.Right()-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawText(box.X+2, box.Y+1, line1)
	dst.DrawText(box.X+2, box.Y+2, line2)
}
