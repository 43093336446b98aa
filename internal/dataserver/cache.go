package dataserver

import (
	"os"
	"sync"
	"time"
)

// frameCache memoizes loaded frames keyed by "bucket/TS-id". Entries are
// invalidated when the file's mtime moves past the cached one, so a fresh
// write from the sync job is picked up on the next request.
type frameCache struct {
	mu      sync.Mutex
	entries map[string]frameEntry
	version int64
}

type frameEntry struct {
	frame   *Frame
	modTime time.Time
}

func newFrameCache() *frameCache {
	return &frameCache{entries: make(map[string]frameEntry)}
}

// load returns the cached frame for path when its mtime is unchanged,
// otherwise reads and derives the frame fresh and stores it under key.
func (c *frameCache) load(key, path string, feePct float64) (*Frame, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && entry.modTime.Equal(info.ModTime()) {
		c.mu.Unlock()
		return entry.frame, nil
	}
	c.mu.Unlock()

	frame, err := LoadFrame(path, feePct)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = frameEntry{frame: frame, modTime: info.ModTime()}
	c.version++
	c.mu.Unlock()
	return frame, nil
}

// dataVersion increments every time any frame is loaded or reloaded. Clients
// can compare it across requests to detect that underlying data moved.
func (c *frameCache) dataVersion() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}
