package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const defaultExportName = "meme.png"

// RenderExport decodes the document's image afresh and renders every field
// onto a surface at the image's native resolution, without selection
// chrome. The returned surface is completely painted.
func RenderExport(ctx context.Context, doc *Document, fonts *FontRegistry) (*Surface, error) {
	img, err := LoadImage(ctx, doc.Image)
	if err != nil {
		return nil, err
	}
	s := NewSurfaceFor(img)
	RenderFrame(s, img, doc, fonts, false)
	return s, nil
}

// ExportPNG writes the flattened document to w as PNG.
func ExportPNG(ctx context.Context, w io.Writer, doc *Document, fonts *FontRegistry) error {
	s, err := RenderExport(ctx, doc, fonts)
	if err != nil {
		return err
	}
	if err := s.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// ExportPNGFile renders the document to filename, appending .png when the
// name has no such extension. It returns the absolute path written.
func ExportPNGFile(ctx context.Context, filename string, doc *Document, fonts *FontRegistry) (string, error) {
	if filename == "" {
		filename = defaultExportName
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		filename += ".png"
	}
	s, err := RenderExport(ctx, doc, fonts)
	if err != nil {
		return "", err
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := s.dc.SavePNG(filename); err != nil {
		return "", fmt.Errorf("save png: %w", err)
	}
	abs, err := filepath.Abs(filename)
	if err != nil {
		return filename, nil
	}
	return abs, nil
}
