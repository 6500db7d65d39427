package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"gridviewer/internal/preview"
)

const (
	windowWidth  = 1280
	windowHeight = 720

	// internal rendering resolution; ebiten scales it to the window
	renderWidth  = 640
	renderHeight = 360
)

func main() {
	fmt.Println("Grid Preview - software renderer")
	fmt.Println("Controls:")
	fmt.Println("  WASD / Arrows : Pan")
	fmt.Println("  - / =         : Zoom")
	fmt.Println("  G             : Toggle hex/square tiling")
	fmt.Println("  H             : Toggle cursor highlight")
	fmt.Println("  Q / Escape    : Exit")
	fmt.Println()

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle(preview.TitleText)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(preview.New(renderWidth, renderHeight)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
