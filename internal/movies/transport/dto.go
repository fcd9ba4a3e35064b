package transport

// FavoriteResponse is the created favorite row as returned to the client.
type FavoriteResponse struct {
	ID      int64 `json:"id"`
	UserID  int64 `json:"user_id"`
	MovieID int64 `json:"movie_id"`
}

// DetailResponse carries a human-readable confirmation message.
type DetailResponse struct {
	Detail string `json:"detail"`
}
