package posts

import (
	"errors"
	"mime"
	"net/http"
	"sort"

	"pet-adoption/internal/domain/comments"
	"pet-adoption/internal/domain/ratings"
	"pet-adoption/internal/errs"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/httpx"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/platform/uploads"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, commentsSvc *comments.Service, images *uploads.Store, log logger.Logger) {
	r.Route("/posts", func(pr chi.Router) {
		pr.Use(middleware.RequireAuth)

		pr.Get("/", listPostsHandler(svc, log))
		pr.Post("/", createPostHandler(svc, images, log))
		pr.Get("/{postID}", getPostHandler(svc, commentsSvc, log))

		pr.Post("/{postID}/like", likePostHandler(svc, log))
		pr.Post("/{postID}/unlike", unlikePostHandler(svc, log))

		pr.Post("/{postID}/comments", createCommentHandler(commentsSvc, log))
	})
}

type createPostRequest struct {
	Title string `json:"title"`
	Image string `json:"image"`
	Tag   string `json:"tag"`
	Body  string `json:"body"`
}

type createCommentRequest struct {
	Comment string `json:"comment"`
}

type postResponse struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	Tag       string `json:"tag"`
	Body      string `json:"body"`
	Date      int64  `json:"date"`
	Likes     int64  `json:"likes"`
	LikedByMe bool   `json:"liked_by_me"`
}

type postDetailResponse struct {
	postResponse
	Comments []comments.Response `json:"comments"`
}

type likesResponse struct {
	Likes int64 `json:"likes"`
	Liked bool  `json:"liked"`
}

// listPostsHandler godoc
//
//	@Summary	List posts, newest first
//	@Tags		posts
//	@Produce	json
//	@Success	200	{array}	postResponse
//	@Router		/posts [get]
func listPostsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		sort.SliceStable(items, func(i, j int) bool {
			if items[i].CreatedAt.Equal(items[j].CreatedAt) {
				return items[i].ID > items[j].ID
			}
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})

		out := make([]postResponse, 0, len(items))
		for _, p := range items {
			pr, err := toPostResponse(r, svc, p)
			if err != nil {
				httpx.WriteError(w, r, log, err)
				return
			}
			out = append(out, pr)
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createPostHandler godoc
//
//	@Summary	Create a post
//	@Tags		posts
//	@Accept		json,mpfd
//	@Produce	json
//	@Param		body	body		createPostRequest	false	"post"
//	@Success	201		{object}	postResponse
//	@Failure	400		{object}	httpx.ErrorBody
//	@Router		/posts [post]
func createPostHandler(svc *Service, images *uploads.Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		req, saved, err := decodeCreatePost(w, r, images)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		p, err := svc.Create(r.Context(), claims.Username, CreateInput{
			Title:    req.Title,
			ImageRef: req.Image,
			Tag:      req.Tag,
			Body:     req.Body,
		})
		if err != nil {
			if saved != "" {
				if rmErr := images.Remove(saved); rmErr != nil {
					log.Warn("discard upload failed", map[string]any{"ref": saved, "error": rmErr})
				}
			}
			httpx.WriteError(w, r, log, err)
			return
		}

		out, err := toPostResponse(r, svc, p)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, out)
	}
}

func decodeCreatePost(w http.ResponseWriter, r *http.Request, images *uploads.Store) (req createPostRequest, saved string, err error) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt != "multipart/form-data" {
		err = httpx.DecodeJSON(w, r, &req)
		return req, "", err
	}

	r.Body = http.MaxBytesReader(w, r.Body, uploads.MaxBytes+httpx.MaxBodyBytes)
	if err := r.ParseMultipartForm(httpx.MaxBodyBytes); err != nil {
		return req, "", errs.Validation("invalid multipart form")
	}
	req = createPostRequest{
		Title: r.FormValue("title"),
		Image: r.FormValue("image"),
		Tag:   r.FormValue("tag"),
		Body:  r.FormValue("body"),
	}

	if images != nil {
		ref, err := images.SaveFormFile(r, "file")
		if err != nil {
			if errors.Is(err, uploads.ErrEmptyFile) || errors.Is(err, uploads.ErrFileTooLarge) {
				return req, "", errs.Validation(err.Error())
			}
			return req, "", err
		}
		if ref != "" {
			req.Image = ref
			saved = ref
		}
	}
	return req, saved, nil
}

// getPostHandler godoc
//
//	@Summary	Post with comments and likes
//	@Tags		posts
//	@Produce	json
//	@Param		postID	path		string	true	"post id"
//	@Success	200		{object}	postDetailResponse
//	@Failure	404		{object}	httpx.ErrorBody
//	@Router		/posts/{postID} [get]
func getPostHandler(svc *Service, commentsSvc *comments.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), chi.URLParam(r, "postID"))
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		pr, err := toPostResponse(r, svc, p)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		list, err := commentsSvc.List(r.Context(), p.ID)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		out := postDetailResponse{postResponse: pr, Comments: make([]comments.Response, 0, len(list))}
		for _, c := range list {
			cr, err := comments.ToResponse(r.Context(), commentsSvc, c)
			if err != nil {
				httpx.WriteError(w, r, log, err)
				return
			}
			out.Comments = append(out.Comments, cr)
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// likePostHandler godoc
//
//	@Summary	Like a post
//	@Tags		posts
//	@Produce	json
//	@Param		postID	path		string	true	"post id"
//	@Success	200		{object}	likesResponse
//	@Failure	404		{object}	httpx.ErrorBody
//	@Failure	409		{object}	httpx.ErrorBody
//	@Router		/posts/{postID}/like [post]
func likePostHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id := chi.URLParam(r, "postID")
		if _, err := svc.Like(r.Context(), claims.Username, id); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		metrics.RecordRating(string(ratings.KindPost), "like")
		writeLikes(w, r, svc, log, id, true)
	}
}

func unlikePostHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id := chi.URLParam(r, "postID")
		if err := svc.Unlike(r.Context(), claims.Username, id); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		metrics.RecordRating(string(ratings.KindPost), "unlike")
		writeLikes(w, r, svc, log, id, false)
	}
}

// createCommentHandler godoc
//
//	@Summary	Comment on a post
//	@Tags		comments
//	@Accept		json
//	@Produce	json
//	@Param		postID	path		string					true	"post id"
//	@Param		body	body		createCommentRequest	true	"comment"
//	@Success	201		{object}	comments.Response
//	@Failure	404		{object}	httpx.ErrorBody
//	@Router		/posts/{postID}/comments [post]
func createCommentHandler(commentsSvc *comments.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createCommentRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		c, err := commentsSvc.Create(r.Context(), claims.Username, chi.URLParam(r, "postID"), req.Comment)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		out, err := comments.ToResponse(r.Context(), commentsSvc, c)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, out)
	}
}

func toPostResponse(r *http.Request, svc *Service, p Post) (postResponse, error) {
	likes, err := svc.SumLikes(r.Context(), p.ID)
	if err != nil {
		return postResponse{}, err
	}
	out := postResponse{
		ID:     p.ID,
		Author: p.AuthorUsername,
		Title:  p.Title,
		Image:  p.ImageRef,
		Tag:    p.Tag,
		Body:   p.Body,
		Date:   p.CreatedAt.Unix(),
		Likes:  likes,
	}
	if claims, ok := middleware.GetClaims(r.Context()); ok {
		mine, err := svc.GetRating(r.Context(), claims.Username, p.ID)
		if err != nil {
			return postResponse{}, err
		}
		out.LikedByMe = mine != nil
	}
	return out, nil
}

func writeLikes(w http.ResponseWriter, r *http.Request, svc *Service, log logger.Logger, id string, liked bool) {
	n, err := svc.SumLikes(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, likesResponse{Likes: n, Liked: liked})
}
