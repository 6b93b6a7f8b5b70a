// Chromaflow - Marble shell themes from wallpaper colours
//
// Chromaflow extracts colour palettes from wallpapers and installs
// matching Marble themes for GNOME Shell.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"chromaflow/internal/cli"
)

func main() {
	cli.Execute()
}
