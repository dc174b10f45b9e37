package netviz

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// ImageCache loads node and package images by path or URL. Loads are
// fire-and-forget: Get returns nil until the fetch completes, at which
// point the registered callback requests a redraw. There is no ordering
// guarantee between in-flight loads and no cancellation; a completion for
// a cache that nobody reads anymore is simply a no-op.
type ImageCache struct {
	mu      sync.Mutex
	images  map[string]*ebiten.Image
	loading map[string]bool
	failed  map[string]bool

	// onLoad fires after any image lands in the cache.
	onLoad func()
}

func NewImageCache(onLoad func()) *ImageCache {
	return &ImageCache{
		images:  make(map[string]*ebiten.Image),
		loading: make(map[string]bool),
		failed:  make(map[string]bool),
		onLoad:  onLoad,
	}
}

// Get returns the cached image, or nil while it is still loading (or has
// failed). The first request for a key starts the load.
func (c *ImageCache) Get(src string) *ebiten.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	if img, ok := c.images[src]; ok {
		return img
	}
	if c.loading[src] || c.failed[src] {
		return nil
	}
	c.loading[src] = true
	go c.load(src)
	return nil
}

func (c *ImageCache) load(src string) {
	img, err := decodeSource(src)

	c.mu.Lock()
	delete(c.loading, src)
	if err != nil {
		c.failed[src] = true
		c.mu.Unlock()
		return
	}
	c.images[src] = ebiten.NewImageFromImage(img)
	onLoad := c.onLoad
	c.mu.Unlock()

	if onLoad != nil {
		onLoad()
	}
}

func decodeSource(src string) (image.Image, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		resp, err := http.Get(src)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		img, _, err := image.Decode(resp.Body)
		return img, err
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
