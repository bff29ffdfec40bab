package entity

import "time"

// PageData is what the fetcher extracts from a rendered bookmark URL.
type PageData struct {
	URL            string
	Title          string
	Description    string
	Platform       string
	HTTPStatusCode int
	ResponseTimeMS int
	FetchedAt      time.Time
}
