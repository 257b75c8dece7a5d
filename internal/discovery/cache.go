// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package discovery

import "sync"

var (
	// Process-wide cache for the discovery document.
	// Lives only in memory and is discarded when the CLI exits.
	globalCache     *Document
	globalCacheLock sync.RWMutex
)

// GetCached returns the cached document, or nil when none was fetched yet.
func GetCached() *Document {
	globalCacheLock.RLock()
	defer globalCacheLock.RUnlock()
	return globalCache
}

// SetCached stores the document for later calls within this process.
func SetCached(d *Document) {
	globalCacheLock.Lock()
	defer globalCacheLock.Unlock()
	globalCache = d
}

// ClearCache removes the cached document (primarily for testing).
func ClearCache() {
	globalCacheLock.Lock()
	defer globalCacheLock.Unlock()
	globalCache = nil
}
