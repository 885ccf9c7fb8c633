//go:build !test

package utils

import (
	"image"

	"github.com/sqweek/dialog"
)

// AskForFile shows a native open-file dialog and returns the chosen
// path.
func AskForFile(title, startingDir string) (string, error) {
	builder := dialog.File().SetStartDir(startingDir).Title(title)

	// show the dialog
	return builder.Load()
}

// AskForSaveFile shows a native save-file dialog and returns the
// chosen path.
func AskForSaveFile(title, startingDir string) (string, error) {
	builder := dialog.File().SetStartDir(startingDir).Title(title)

	return builder.Save()
}

// SaveImage asks the user where to save img and writes it as a PNG.
func SaveImage(img image.Image) error {
	filename, err := dialog.File().Filter("PNG Image", "png").Title("Save Image").Save()
	if err != nil {
		return err
	}

	// does file have a .png extension?
	if len(filename) < 4 || filename[len(filename)-4:] != ".png" {
		filename += ".png"
	}

	return SaveImageTo(img, filename)
}
