package colleges

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/HerbHall/collegefinder/internal/services"
)

var errImageTooLarge = errors.New("image exceeds upload limit")

// fetchImage downloads an image from url, rejecting non-image content and
// bodies larger than the upload limit.
func (m *Module) fetchImage(ctx context.Context, url string) (*services.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", req.URL.Scheme)
	}
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	data, err := readLimited(resp.Body, m.maxUpload)
	if err != nil {
		return nil, err
	}
	return imageFrom(data, resp.Header.Get("Content-Type"))
}

// readLimited reads r fully, failing when it holds more than limit bytes.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errImageTooLarge
	}
	return data, nil
}

// imageFrom resolves the MIME type from the declared content type or by
// sniffing, and rejects anything that is not an image.
func imageFrom(data []byte, declared string) (*services.Image, error) {
	if len(data) == 0 {
		return nil, errors.New("image is empty")
	}
	mt, _, err := mime.ParseMediaType(declared)
	if err != nil || !strings.HasPrefix(mt, "image/") {
		mt = http.DetectContentType(data)
		if i := strings.IndexByte(mt, ';'); i >= 0 {
			mt = mt[:i]
		}
	}
	if !strings.HasPrefix(mt, "image/") {
		return nil, fmt.Errorf("content is %s, not an image", mt)
	}
	return &services.Image{Data: data, MIME: mt}, nil
}
