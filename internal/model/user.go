package model

import "time"

// User represents a registered voter. Accounts are created by the signup flow,
// which lives outside this service; votes only reference them.
type User struct {
	ID         string    `json:"id"`
	Username   string    `json:"username,omitempty"`
	Phone      string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	LastActive time.Time `json:"-"`
}

// LeaderboardEntry is one row of the dashboard leaderboard.
type LeaderboardEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Votes int    `json:"votes"`
}

// DashboardStats is the API response for admin dashboard statistics.
// Partial is true when one or more sub-queries failed and their fields
// were defaulted to zero.
type DashboardStats struct {
	VotesCast        int                `json:"votesCast"`
	TotalContestants int                `json:"totalContestants"`
	TotalUsers       int                `json:"totalUsers"`
	Leaderboard      []LeaderboardEntry `json:"leaderboard"`
	Partial          bool               `json:"partial,omitempty"`
}
