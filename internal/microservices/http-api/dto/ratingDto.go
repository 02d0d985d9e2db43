package dto

// SubmitRatingDTO for POST /add_rating/
type SubmitRatingDTO struct {
	Movie int64 `json:"movie" form:"movie" binding:"required,gt=0"`
	Score int   `json:"score" form:"score" binding:"required,min=1,max=10"`
}

// RatingResponse reports the voter's score and the movie's new aggregate.
type RatingResponse struct {
	MovieID int64   `json:"movie_id"`
	Score   int     `json:"score"`
	Rating  float64 `json:"rating"`
	Votes   int64   `json:"votes"`
}
