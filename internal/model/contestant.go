package model

import "time"

// Contestant represents a show participant eligible to receive votes.
type Contestant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Campus     string    `json:"campus,omitempty"`
	Province   string    `json:"province,omitempty"`
	Active     bool      `json:"active"`
	Eliminated bool      `json:"eliminated"`
	PhotoURL   *string   `json:"photoUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	VoteTotal  int       `json:"votes"`
}

// Pagination describes the page window of a listing response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ContestantListResponse is the API response for paginated contestant listings.
type ContestantListResponse struct {
	Contestants []Contestant `json:"contestants"`
	Pagination  Pagination   `json:"pagination"`
}
