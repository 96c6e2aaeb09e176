// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

/*
prefetch.go - Feed Image Prefetch Pool

Browsing the feed queues workout images for background download so the
dashboard can serve them locally. Prefetch is fire and forget: callers
never block on downloads, and a saturated queue drops work rather than
stalling the feed response. Workers share a rate limiter so a large
feed page cannot hammer the image CDN.
*/

package sync

import (
	"context"
	"strings"
	gosync "sync"

	"golang.org/x/time/rate"

	"github.com/tomtom215/gravitus/internal/logging"
	"github.com/tomtom215/gravitus/internal/metrics"
	"github.com/tomtom215/gravitus/internal/store"
)

// prefetchQueueSize bounds the pending download queue. Beyond this the
// pool is saturated and new URLs are dropped.
const prefetchQueueSize = 256

// ImagePrefetcher downloads images into the local store with a fixed
// pool of workers.
type ImagePrefetcher struct {
	store   store.Store
	client  Client
	limiter *rate.Limiter

	queue  chan string
	cancel context.CancelFunc
	wg     gosync.WaitGroup
}

// NewImagePrefetcher starts a prefetch pool with the given worker count
// and per-second download rate. A rate of 0 disables throttling.
func NewImagePrefetcher(s store.Store, client Client, workers, perSecond int) *ImagePrefetcher {
	if workers < 1 {
		workers = 1
	}
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &ImagePrefetcher{
		store:   s,
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		queue:   make(chan string, prefetchQueueSize),
		cancel:  cancel,
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(ctx)
	}
	return p
}

// Prefetch queues image URLs for download without blocking. URLs that do
// not fit in the queue are silently dropped; the next feed page will
// offer them again.
func (p *ImagePrefetcher) Prefetch(urls []string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		select {
		case p.queue <- url:
		default:
			logging.Debug().Str("url", url).Msg("Prefetch queue full, dropping image")
		}
	}
}

// Close stops the workers and waits for in-flight downloads to finish.
func (p *ImagePrefetcher) Close() {
	p.cancel()
	p.wg.Wait()
}

func (p *ImagePrefetcher) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case url := <-p.queue:
			p.fetch(ctx, url)
		}
	}
}

// fetch downloads one image unless it is already stored.
func (p *ImagePrefetcher) fetch(ctx context.Context, url string) {
	key := imageKey(url)

	if _, err := p.store.Get(store.PartitionImages, key); err == nil {
		metrics.ImagePrefetchTotal.WithLabelValues("cached").Inc()
		return
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return // shutting down
	}

	data, err := p.client.FetchImage(ctx, url)
	if err != nil {
		logging.Warn().Err(err).Str("url", url).Msg("Image prefetch failed")
		metrics.ImagePrefetchTotal.WithLabelValues("error").Inc()
		return
	}

	if err := p.store.Put(store.PartitionImages, key, data); err != nil {
		logging.Warn().Err(err).Str("url", url).Msg("Failed to store prefetched image")
		metrics.ImagePrefetchTotal.WithLabelValues("error").Inc()
		return
	}
	metrics.ImagePrefetchTotal.WithLabelValues("stored").Inc()
}

// imageKey derives the storage key from the last path segment of the
// URL, dropping any query string. CDN URLs embed a unique object name
// there, so collisions mean the same image.
func imageKey(url string) string {
	if i := strings.IndexByte(url, '?'); i >= 0 {
		url = url[:i]
	}
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		return url[i+1:]
	}
	return url
}
