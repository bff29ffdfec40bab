package request

type SubmitBookmarkRequest struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	Type         string `json:"type"`
	SourceType   string `json:"source_type"`
	ClientSource string `json:"client_source"`
	Platform     string `json:"platform"`
	Force        bool   `json:"force"`
}
