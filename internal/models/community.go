package models

// CommunityPost is an item of the community highlight feed.
type CommunityPost struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Excerpt   string  `json:"excerpt"`
	Author    *string `json:"author,omitempty"`
	CreatedAt *string `json:"created_at,omitempty"`
	Image     *string `json:"image,omitempty"`
	URL       *string `json:"url,omitempty"`
}

// CommunityFeed is the reply of the community feed endpoint.
type CommunityFeed struct {
	Results []CommunityPost `json:"results"`
}
