package model

import "time"

// Vote represents an individual vote record.
type Vote struct {
	ID           string    `json:"id"`
	ContestantID string    `json:"contestantId"`
	UserID       string    `json:"userId"`
	VoteCount    int       `json:"voteCount"`
	IsPaid       bool      `json:"isPaid"`
	VotingRound  string    `json:"votingRound"`
	CreatedAt    time.Time `json:"createdAt"`
	IPHash       string    `json:"-"`
}

// VoteRequest is the API request body for submitting a vote.
type VoteRequest struct {
	ContestantID string `json:"contestantId"`
	UserID       string `json:"userId"`
	VoteCount    int    `json:"voteCount,omitempty"`
	IsPaid       bool   `json:"isPaid,omitempty"`
}

// VoteResponse is the API response after submitting a vote.
type VoteResponse struct {
	Success  bool   `json:"success"`
	VoteID   string `json:"voteId"`
	NewTotal int    `json:"newTotal"`
}

// TallyEntry is one contestant's aggregate in a tally frame.
type TallyEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Votes int    `json:"votes"`
}

// TallyFrame is a single event on the vote stream. Type is "initial" for the
// full snapshot sent on subscribe and "update" for subsequent deltas.
type TallyFrame struct {
	Type        string       `json:"type"`
	Contestants []TallyEntry `json:"contestants"`
}
