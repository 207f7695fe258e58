package main

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/bodgit/sevenzip"
	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nwaples/rardecode"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
)

// maxRemoteImageBytes caps a single remote download
const maxRemoteImageBytes = 64 << 20

// NavigationDirection represents the direction of navigation
type NavigationDirection int

const (
	NavigationForward NavigationDirection = iota
	NavigationBackward
	NavigationJump
)

// Fetcher reads the raw bytes behind a locator
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher whose remote requests time out after timeout
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch returns the encoded image bytes for u
func (f *Fetcher) Fetch(ctx context.Context, u *url.URL) ([]byte, error) {
	switch u.Scheme {
	case schemeFile, "":
		return os.ReadFile(filepath.FromSlash(u.Path))
	case schemeHTTP, schemeHTTPS:
		return f.fetchRemote(ctx, u)
	case schemeZip:
		return readFromZip(filepath.FromSlash(u.Path), u.Fragment)
	case schemeRar:
		return readFromRar(filepath.FromSlash(u.Path), u.Fragment)
	case scheme7z:
		return readFrom7z(filepath.FromSlash(u.Path), u.Fragment)
	default:
		return nil, fmt.Errorf("unsupported locator scheme: %s", u.Scheme)
	}
}

func (f *Fetcher) fetchRemote(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: %s", u, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxRemoteImageBytes {
		return nil, fmt.Errorf("fetching %s: image larger than %d bytes", u, maxRemoteImageBytes)
	}
	return data, nil
}

func readFromZip(archivePath, entryPath string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func readFromRar(archivePath, entryPath string) ([]byte, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Name == entryPath {
			return io.ReadAll(r)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func readFrom7z(archivePath, entryPath string) ([]byte, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

// decodeImage decodes the bytes of any registered format
func decodeImage(data []byte, name string) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// PreloadStats provides statistics about loading
type PreloadStats struct {
	LoadedCount   int
	FailedCount   int
	LastDirection NavigationDirection
}

// loaded is one cached page image
type loaded struct {
	img  *ebiten.Image
	size int64 // encoded bytes
	err  error
}

// ImageManager loads locator-backed page images and keeps the recent ones.
// Remote locators never block the caller; local ones load on first use.
type ImageManager struct {
	fetcher *Fetcher
	cache   *lru.Cache[string, *loaded]
	group   singleflight.Group

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.RWMutex
	stats   PreloadStats
	pending map[string]bool

	preloadCh    chan preloadRequest
	preloadCount int
	preloadOn    bool
}

type preloadRequest struct {
	locators  []*url.URL
	direction NavigationDirection
}

// NewImageManager creates an ImageManager with an LRU of cacheSize images
func NewImageManager(fetcher *Fetcher, cacheSize, preloadCount int, preloadEnabled bool) *ImageManager {
	onEvict := func(_ string, l *loaded) {
		if l != nil && l.img != nil {
			l.img.Deallocate()
		}
	}
	cache, err := lru.NewWithEvict[string, *loaded](cacheSize, onEvict)
	if err != nil {
		log.Printf("Error: Failed to create LRU cache: %v", err)
		cache, _ = lru.NewWithEvict[string, *loaded](16, onEvict)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &ImageManager{
		fetcher:      fetcher,
		cache:        cache,
		ctx:          ctx,
		cancel:       cancel,
		pending:      make(map[string]bool),
		preloadCh:    make(chan preloadRequest, 1),
		preloadCount: preloadCount,
		preloadOn:    preloadEnabled,
	}
	go m.worker()
	return m
}

// Stop cancels in-flight loads and the preload worker
func (m *ImageManager) Stop() {
	m.cancel()
}

// GetImage returns the image for u. For remote locators that are not cached yet
// it starts a background load and returns nil, false.
func (m *ImageManager) GetImage(u *url.URL) (*ebiten.Image, bool) {
	key := locatorKey(u)
	if l, ok := m.cache.Get(key); ok {
		return l.img, true
	}

	if isRemote(u) {
		m.loadAsync(u)
		return nil, false
	}

	l := m.load(u)
	return l.img, true
}

// Cached returns the image for u only if it is already loaded
func (m *ImageManager) Cached(u *url.URL) (*ebiten.Image, bool) {
	l, ok := m.cache.Peek(locatorKey(u))
	if !ok {
		return nil, false
	}
	return l.img, true
}

// Size returns the encoded size of a cached image, or -1
func (m *ImageManager) Size(u *url.URL) int64 {
	if l, ok := m.cache.Peek(locatorKey(u)); ok && l.err == nil {
		return l.size
	}
	return -1
}

// CacheLen returns the number of cached images
func (m *ImageManager) CacheLen() int {
	return m.cache.Len()
}

// GetStats returns current load statistics
func (m *ImageManager) GetStats() PreloadStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

func (m *ImageManager) loadAsync(u *url.URL) {
	key := locatorKey(u)

	m.mu.Lock()
	if m.pending[key] {
		m.mu.Unlock()
		return
	}
	m.pending[key] = true
	m.mu.Unlock()

	go func() {
		m.load(u)
		m.mu.Lock()
		delete(m.pending, key)
		m.mu.Unlock()
	}()
}

// load fetches, decodes and caches u. Concurrent loads of one locator share a
// single fetch. Failures are cached as an error placeholder image.
func (m *ImageManager) load(u *url.URL) *loaded {
	key := locatorKey(u)
	v, _, _ := m.group.Do(key, func() (interface{}, error) {
		if l, ok := m.cache.Get(key); ok {
			return l, nil
		}

		l := &loaded{}
		data, err := m.fetcher.Fetch(m.ctx, u)
		if err == nil {
			l.size = int64(len(data))
			var img image.Image
			img, err = decodeImage(data, displayName(u))
			if err == nil {
				l.img = ebiten.NewImageFromImage(img)
			}
		}

		m.mu.Lock()
		if err != nil {
			m.stats.FailedCount++
		} else {
			m.stats.LoadedCount++
		}
		m.mu.Unlock()

		if err != nil {
			if m.ctx.Err() != nil {
				return l, nil
			}
			log.Printf("Error: Failed to load image %s: %v", displayPath(u), err)
			l.err = err
			l.img = CreateErrorImage(400, 300, displayName(u), err.Error())
		}

		m.cache.Add(key, l)

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)
		debugLog("Loaded %s (cache: %d items, memory: %dMB)", key, m.cache.Len(), mem.Alloc/1024/1024)
		return l, nil
	})
	return v.(*loaded)
}

// StartPreload warms the cache with the pages after (or before) current.
// A newer request replaces one that has not started yet.
func (m *ImageManager) StartPreload(locators []*url.URL, current int, direction NavigationDirection) {
	if !m.preloadOn {
		return
	}

	indices := calculatePreloadIndices(current, direction, len(locators), m.preloadCount)
	req := preloadRequest{direction: direction}
	for _, i := range indices {
		if locators[i] != nil {
			req.locators = append(req.locators, locators[i])
		}
	}

	// Clear the channel so only the newest request is pending
	select {
	case <-m.preloadCh:
	default:
	}
	select {
	case m.preloadCh <- req:
	default:
		debugLog("Preload request channel full, skipping preload request")
	}
}

func (m *ImageManager) worker() {
	for {
		select {
		case <-m.ctx.Done():
			return
		case req := <-m.preloadCh:
			m.mu.Lock()
			m.stats.LastDirection = req.direction
			m.mu.Unlock()

			for _, u := range req.locators {
				select {
				case <-m.ctx.Done():
					return
				default:
				}
				if !m.cache.Contains(locatorKey(u)) {
					m.load(u)
				}
			}
		}
	}
}

// calculatePreloadIndices returns the page indices to warm around current
func calculatePreloadIndices(current int, direction NavigationDirection, count, maxPreload int) []int {
	var indices []int
	add := func(i int) {
		if i >= 0 && i < count {
			indices = append(indices, i)
		}
	}

	switch direction {
	case NavigationForward:
		for i := 1; i <= maxPreload; i++ {
			add(current + i)
		}
	case NavigationBackward:
		for i := 1; i <= maxPreload; i++ {
			add(current - i)
		}
	case NavigationJump:
		half := maxPreload / 2
		if half == 0 {
			half = 1
		}
		for i := 1; i <= half; i++ {
			add(current + i)
			add(current - i)
		}
	}
	return indices
}
