package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"filmoteka_backend/internal/movies/service"
	"filmoteka_backend/internal/movies/transport"
	"filmoteka_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const (
	msgMissingKeyword = "keyword is required"
	msgInvalidMovieID = "invalid movie id"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Search is auth-gated but otherwise independent of the caller's identity.
func (h *Handler) Search(c *gin.Context) {
	if httpkit.MustGetIdentity(c) == nil {
		return
	}

	keyword := c.Query("keyword")
	if keyword == "" {
		httpkit.Error(c, http.StatusBadRequest, msgMissingKeyword, nil)
		return
	}

	body, err := h.svc.Search(c.Request.Context(), keyword)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

func (h *Handler) Lookup(c *gin.Context) {
	if httpkit.MustGetIdentity(c) == nil {
		return
	}

	movieID, ok := movieIDParam(c)
	if !ok {
		return
	}

	body, err := h.svc.Lookup(c.Request.Context(), movieID)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

func (h *Handler) AddFavorite(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	movieID, ok := movieIDParam(c)
	if !ok {
		return
	}

	fav, err := h.svc.AddFavorite(c.Request.Context(), id.UserID(), movieID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.FavoriteResponse{
		ID:      fav.ID,
		UserID:  fav.UserID,
		MovieID: fav.MovieID,
	})
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	movieID, ok := movieIDParam(c)
	if !ok {
		return
	}

	if err := h.svc.RemoveFavorite(c.Request.Context(), id.UserID(), movieID); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.DetailResponse{
		Detail: fmt.Sprintf("Movie %d removed from favorites.", movieID),
	})
}

// ListFavorites returns one catalog detail document per stored favorite, in
// persistence order. An empty favorites list yields an empty JSON array.
func (h *Handler) ListFavorites(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	movies, err := h.svc.ListFavorites(c.Request.Context(), id.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, movies)
}

func movieIDParam(c *gin.Context) (int64, bool) {
	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidMovieID, nil)
		return 0, false
	}
	return movieID, true
}
