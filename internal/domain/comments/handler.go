package comments

import (
	"context"
	"net/http"

	"pet-adoption/internal/domain/ratings"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/httpx"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /comments/{commentID}. La creación cuelga de
// /posts/{postID}/comments y la registra posts.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/comments", func(cr chi.Router) {
		cr.Use(middleware.RequireAuth)

		cr.Get("/{commentID}", getCommentHandler(svc, log))
		cr.Post("/{commentID}/like", likeCommentHandler(svc, log))
		cr.Post("/{commentID}/unlike", unlikeCommentHandler(svc, log))
	})
}

// Response es la forma JSON de un comment; posts la reusa en el detalle del post.
type Response struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	PostID    string `json:"post_id"`
	Body      string `json:"body"`
	Date      int64  `json:"date"`
	Likes     int64  `json:"likes"`
	LikedByMe bool   `json:"liked_by_me"`
}

type likesResponse struct {
	Likes int64 `json:"likes"`
	Liked bool  `json:"liked"`
}

// ToResponse arma la respuesta con el conteo y el like del usuario de ctx.
func ToResponse(ctx context.Context, svc *Service, c Comment) (Response, error) {
	likes, err := svc.SumLikes(ctx, c.ID)
	if err != nil {
		return Response{}, err
	}
	out := Response{
		ID:     c.ID,
		Author: c.AuthorUsername,
		PostID: c.PostID,
		Body:   c.Body,
		Date:   c.CreatedAt.Unix(),
		Likes:  likes,
	}
	if claims, ok := middleware.GetClaims(ctx); ok {
		mine, err := svc.GetRating(ctx, claims.Username, c.ID)
		if err != nil {
			return Response{}, err
		}
		out.LikedByMe = mine != nil
	}
	return out, nil
}

// getCommentHandler godoc
//
//	@Summary	Get a comment with its likes
//	@Tags		comments
//	@Produce	json
//	@Param		commentID	path		string	true	"comment id"
//	@Success	200			{object}	Response
//	@Failure	404			{object}	httpx.ErrorBody
//	@Router		/comments/{commentID} [get]
func getCommentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Get(r.Context(), chi.URLParam(r, "commentID"))
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		out, err := ToResponse(r.Context(), svc, c)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// likeCommentHandler godoc
//
//	@Summary	Like a comment
//	@Tags		comments
//	@Produce	json
//	@Param		commentID	path		string	true	"comment id"
//	@Success	200			{object}	likesResponse
//	@Failure	409			{object}	httpx.ErrorBody
//	@Router		/comments/{commentID}/like [post]
func likeCommentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id := chi.URLParam(r, "commentID")
		if _, err := svc.Like(r.Context(), claims.Username, id); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		metrics.RecordRating(string(ratings.KindComment), "like")
		writeLikes(w, r, svc, log, id, true)
	}
}

func unlikeCommentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id := chi.URLParam(r, "commentID")
		if err := svc.Unlike(r.Context(), claims.Username, id); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		metrics.RecordRating(string(ratings.KindComment), "unlike")
		writeLikes(w, r, svc, log, id, false)
	}
}

func writeLikes(w http.ResponseWriter, r *http.Request, svc *Service, log logger.Logger, id string, liked bool) {
	n, err := svc.SumLikes(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, likesResponse{Likes: n, Liked: liked})
}
