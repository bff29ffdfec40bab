package chromedp_fetcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/user/bookmark-service/internal/entity"
	"github.com/user/bookmark-service/internal/repository"
)

type ChromedpFetcher struct {
	allocatorPool *sync.Pool
	timeout       time.Duration
}

// NewChromedpFetcher creates a new page fetcher implementation using chromedp.
func NewChromedpFetcher(maxConcurrency int, pageLoadTimeout time.Duration) (repository.PageFetcher, error) {
	pool := &sync.Pool{
		New: func() interface{} {
			opts := append(chromedp.DefaultExecAllocatorOptions[:],
				chromedp.Flag("headless", true),
				chromedp.Flag("disable-gpu", true),
				chromedp.Flag("no-sandbox", true),
				chromedp.Flag("disable-dev-shm-usage", true),
				chromedp.UserAgent(`Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36`),
			)
			allocCtx, _ := chromedp.NewExecAllocator(context.Background(), opts...)
			return allocCtx
		},
	}

	// Pre-warm the pool
	for i := 0; i < maxConcurrency; i++ {
		allocCtx := pool.Get().(context.Context)
		pool.Put(allocCtx)
	}

	return &ChromedpFetcher{
		allocatorPool: pool,
		timeout:       pageLoadTimeout,
	}, nil
}

// Fetch renders the URL in a headless browser and extracts its metadata.
func (f *ChromedpFetcher) Fetch(ctx context.Context, url string) (*entity.PageData, error) {
	allocCtx := f.allocatorPool.Get().(context.Context)
	defer f.allocatorPool.Put(allocCtx)

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	taskCtx, cancel = context.WithTimeout(taskCtx, f.timeout)
	defer cancel()

	// The first document response carries the page's own status code;
	// subresource responses are ignored.
	var statusCode atomic.Int64
	chromedp.ListenTarget(taskCtx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok {
			if resp.Type == network.ResourceTypeDocument {
				statusCode.CompareAndSwap(0, resp.Response.Status)
			}
		}
	})

	var title, description, platform string
	startTime := time.Now()

	err := chromedp.Run(taskCtx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.Title(&title),
		chromedp.EvaluateAsDevTools(
			`document.querySelector('meta[name="description"]')?.content ?? ''`, &description),
		chromedp.EvaluateAsDevTools(
			`document.querySelector('meta[property="og:site_name"]')?.content ?? ''`, &platform),
	)

	responseTime := time.Since(startTime).Milliseconds()

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", repository.ErrFetchTimeout, url)
		}
		return nil, fmt.Errorf("%w: %v", repository.ErrNavigationFailed, err)
	}

	status := int(statusCode.Load())
	if status >= 400 {
		return nil, fmt.Errorf("%w: received status code %d", repository.ErrContentRestricted, status)
	}

	return &entity.PageData{
		URL:            url,
		Title:          title,
		Description:    description,
		Platform:       platform,
		HTTPStatusCode: status,
		ResponseTimeMS: int(responseTime),
		FetchedAt:      time.Now(),
	}, nil
}
