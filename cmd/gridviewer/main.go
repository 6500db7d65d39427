package main

import (
	"fmt"
	"os"

	"gridviewer/internal/app"
)

func main() {
	fmt.Println("Grid Viewer - WebGPU")
	fmt.Println("Controls:")
	fmt.Println("  Mouse drag    : Pan")
	fmt.Println("  Right drag    : Orbit")
	fmt.Println("  Mouse wheel   : Zoom")
	fmt.Println("  WASD / Arrows : Pan")
	fmt.Println("  Q / E         : Orbit")
	fmt.Println("  G             : Toggle hex/square tiling")
	fmt.Println("  H             : Toggle cursor highlight")
	fmt.Println("  - / =         : Grid scale")
	fmt.Println("  Escape        : Exit")
	fmt.Println()

	application, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer application.Cleanup()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
