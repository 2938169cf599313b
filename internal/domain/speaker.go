package domain

// Speaker is one published speaker as exported to the website. Submissions
// is restricted to the speaker's publishable sessions; speakers without any
// are dropped from the dataset entirely. The social fields come from the
// question answers, normalized to canonical profile URLs.
// swagger:model Speaker
type Speaker struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Biography   *string  `json:"biography"`
	Avatar      string   `json:"avatar"`
	Slug        string   `json:"slug"`
	Submissions []string `json:"submissions"`
	Affiliation *string  `json:"affiliation"`
	Homepage    *string  `json:"homepage"`
	TwitterURL  *string  `json:"twitter_url"`
	MastodonURL *string  `json:"mastodon_url"`
	LinkedInURL *string  `json:"linkedin_url"`
	GitxURL     *string  `json:"gitx"`
	WebsiteURL  string   `json:"website_url"`
}
