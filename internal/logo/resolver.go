package logo

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/webp"
)

const maxImageBytes = 2 << 20

var (
	// ErrNoImage is returned for companies without a logo URL
	ErrNoImage = errors.New("no logo image")
	// ErrUnsupported is returned for logos that cannot be rasterised
	ErrUnsupported = errors.New("unsupported logo format")
)

// Resolver turns logo URLs into a single badge colour. Both colours and
// failures are cached, so a broken logo is fetched once and then rendered
// with the initials fallback.
type Resolver struct {
	http  *http.Client
	cache *cache.Cache
}

type failure struct{ err error }

// NewResolver creates a resolver whose cache entries live for ttl
func NewResolver(timeout, ttl time.Duration) *Resolver {
	return &Resolver{
		http:  &http.Client{Timeout: timeout},
		cache: cache.New(ttl, 2*ttl),
	}
}

// Color returns the prominent colour of the image at imageURL as "#rrggbb"
func (r *Resolver) Color(ctx context.Context, imageURL string) (string, error) {
	if imageURL == "" {
		return "", ErrNoImage
	}
	if v, ok := r.cache.Get(imageURL); ok {
		switch v := v.(type) {
		case string:
			return v, nil
		case failure:
			return "", v.err
		}
	}

	color, err := r.extract(ctx, imageURL)
	if err != nil {
		logrus.WithFields(logrus.Fields{"url": imageURL, "error": err}).Debug("logo colour unavailable")
		r.cache.SetDefault(imageURL, failure{err: err})
		return "", err
	}
	r.cache.SetDefault(imageURL, color)
	return color, nil
}

func (r *Resolver) extract(ctx context.Context, imageURL string) (color string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("colour extraction panicked: %v", rec)
		}
	}()

	u, err := url.Parse(imageURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid image URL: %s", imageURL)
	}
	if strings.HasSuffix(strings.ToLower(u.Path), ".svg") {
		return "", ErrUnsupported
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch logo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch logo: %s", resp.Status)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return prominent(img)
}

func prominent(img image.Image) (string, error) {
	bounds := img.Bounds()
	nrgba := image.NewNRGBA(bounds)
	draw.Draw(nrgba, bounds, img, bounds.Min, draw.Src)

	colors, err := prominentcolor.KmeansWithAll(prominentcolor.DefaultK, nrgba,
		prominentcolor.ArgumentDefault, prominentcolor.DefaultSize, prominentcolor.GetDefaultMasks())
	if err != nil || len(colors) == 0 {
		// logos on a plain white or black background are entirely masked
		colors, err = prominentcolor.KmeansWithAll(prominentcolor.DefaultK, nrgba,
			prominentcolor.ArgumentDefault, prominentcolor.DefaultSize, nil)
	}
	if err != nil {
		return "", fmt.Errorf("colour extraction failed: %w", err)
	}
	if len(colors) == 0 {
		return "", errors.New("colour extraction found no colours")
	}
	c := colors[0].Color
	return fmt.Sprintf("#%02x%02x%02x", uint8(c.R), uint8(c.G), uint8(c.B)), nil
}
