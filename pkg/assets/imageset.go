// imageset.go — Xcode asset catalog image set metadata.
package assets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Contents is the Contents.json document inside an .imageset folder.
type Contents struct {
	Images []ImageEntry `json:"images"`
	Info   Info         `json:"info"`
}

// ImageEntry is one slot of an image set. Filename is empty for unfilled scales.
type ImageEntry struct {
	Filename string `json:"filename,omitempty"`
	Idiom    string `json:"idiom"`
	Scale    string `json:"scale"`
}

// Info identifies the tool that wrote the catalog entry.
type Info struct {
	Author  string `json:"author"`
	Version int    `json:"version"`
}

// NewContents places filename in the 1x slot and leaves 2x and 3x empty.
func NewContents(filename string) Contents {
	return Contents{
		Images: []ImageEntry{
			{Filename: filename, Idiom: "universal", Scale: "1x"},
			{Idiom: "universal", Scale: "2x"},
			{Idiom: "universal", Scale: "3x"},
		},
		Info: Info{Author: "xcode", Version: 1},
	}
}

func writeContents(dir, filename string) error {
	data, err := json.MarshalIndent(NewContents(filename), "", "  ")
	if err != nil {
		return fmt.Errorf("encode Contents.json: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filepath.Join(dir, "Contents.json"), data, 0o644); err != nil {
		return fmt.Errorf("write Contents.json: %w", err)
	}
	return nil
}
