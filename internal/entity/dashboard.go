package entity

// TypeCount is one bucket of the content-type distribution.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// FolderCount is one entry of the top-N folder ranking.
type FolderCount struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// GrowthPoint is one day of the bookmark growth series. Date is formatted
// YYYY-MM-DD.
type GrowthPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DashboardStats is the aggregate payload consumed by the mobile board
// screen in a single fetch.
type DashboardStats struct {
	TotalBookmarks   int           `json:"totalBookmarks"`
	WeekBookmarks    int           `json:"weekBookmarks"`
	TotalChats       int           `json:"totalChats"`
	EmbeddingRate    int           `json:"embeddingRate"`
	TypeDistribution []TypeCount   `json:"typeDistribution"`
	FolderRanking    []FolderCount `json:"folderRanking"`
	GrowthTrend      []GrowthPoint `json:"growthTrend"`
}
