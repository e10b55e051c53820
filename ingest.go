package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const maxImageBytes = 64 << 20

var (
	ErrNotImage = errors.New("not an image")
	ErrNoImage  = errors.New("no image loaded")
)

// readImageSource returns the raw bytes behind ref, which may be a local
// path, a data URI or an http(s) URL.
func readImageSource(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case ref == "":
		return nil, ErrNoImage
	case strings.HasPrefix(ref, "data:"):
		return decodeDataURI(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return fetchImage(ctx, ref)
	}
	path, err := expandPath(ref)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

// isLocalRef reports whether ref names a file on disk.
func isLocalRef(ref string) bool {
	return ref != "" && !strings.HasPrefix(ref, "data:") &&
		!strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://")
}

// decodeDataURI handles data:[<mediatype>][;base64],<data>.
func decodeDataURI(ref string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI")
	}
	if strings.HasSuffix(header, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("data URI: %w", err)
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("data URI: %w", err)
	}
	return []byte(s), nil
}

func fetchImage(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
}

// LoadImage reads and decodes the image behind ref.
func LoadImage(ctx context.Context, ref string) (image.Image, error) {
	data, err := readImageSource(ctx, ref)
	if err != nil {
		return nil, err
	}
	return decodeImage(data)
}

func decodeImage(data []byte) (image.Image, error) {
	if !filetype.IsImage(data) {
		return nil, ErrNotImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
