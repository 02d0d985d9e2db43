package dto

import "moviehub/internal/microservices/http-api/models"

// ReactionResponse reports the outcome of a like/dislike request.
type ReactionResponse struct {
	Kind     models.TargetKind    `json:"kind"`
	ID       int64                `json:"id"`
	State    models.ReactionState `json:"state"`
	Vote     *int                 `json:"vote"`
	Likes    int64                `json:"likes"`
	Dislikes int64                `json:"dislikes"`
}

// BookmarkResponse reports whether the target is bookmarked after a toggle.
type BookmarkResponse struct {
	Kind       models.TargetKind `json:"kind"`
	ID         int64             `json:"id"`
	Bookmarked bool              `json:"bookmarked"`
}

// BookmarkOverview is the bookmark landing page: a few of each kind.
type BookmarkOverview struct {
	Movies       []MovieListItem  `json:"movies"`
	MoviesTotal  int64            `json:"movies_total"`
	Persons      []PersonListItem `json:"persons"`
	PersonsTotal int64            `json:"persons_total"`
}
