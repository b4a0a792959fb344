package repository

import "errors"

var (
	ErrContestantNotFound   = errors.New("contestant not found")
	ErrContestantIneligible = errors.New("contestant is not eligible for votes")
	ErrUserNotFound         = errors.New("user not found")
	ErrVoteNotFound         = errors.New("vote not found")
	ErrSponsorNotFound      = errors.New("sponsor not found")
)
