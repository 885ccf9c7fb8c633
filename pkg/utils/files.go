package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
)

// LoadFile reads a data file, transparently decompressing gzip, zip
// and 7z containers. Archives contribute their first entry; anything
// without a known archive extension is returned as is.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var decoder io.Reader
	switch filepath.Ext(filename) {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".zip":
		r, zErr := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if zErr != nil {
			return nil, zErr
		}
		if len(r.File) == 0 {
			return nil, fmt.Errorf("%s: archive is empty", filename)
		}
		decoder, err = r.File[0].Open()
	case ".7z":
		r, zErr := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if zErr != nil {
			return nil, zErr
		}
		if len(r.File) == 0 {
			return nil, fmt.Errorf("%s: archive is empty", filename)
		}
		decoder, err = r.File[0].Open()
	default:
		return data, nil
	}
	if err != nil {
		return nil, err
	}

	return io.ReadAll(decoder)
}
