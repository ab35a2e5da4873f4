package accounts

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pet-adoption/internal/errs"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/httpx"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

// SessionIssuer es lo que el handler necesita del manager de sesiones.
type SessionIssuer interface {
	Issue(ctx context.Context, username string) (token string, expiresAt time.Time, err error)
	Revoke(ctx context.Context, token string) error
}

// RegisterRoutes monta signup/login/logout (públicos) y /me, /accounts/{username}.
// loginLimit puede ser nil.
func RegisterRoutes(r chi.Router, svc *Service, sessions SessionIssuer, loginLimit func(http.Handler) http.Handler, log logger.Logger) {
	r.Post("/signup", signupHandler(svc, log))

	login := http.Handler(loginHandler(svc, sessions, log))
	if loginLimit != nil {
		login = loginLimit(login)
	}
	r.Method(http.MethodPost, "/login", login)

	r.Post("/logout", logoutHandler(sessions, log))
	r.Get("/logout", logoutHandler(sessions, log))

	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireAuth)
		ar.Get("/me", meHandler(svc, log))
		ar.Get("/accounts/{username}", getAccountHandler(svc, log))
	})
}

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Picture  string `json:"picture"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type accountResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Name     *string `json:"name,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Picture  *string `json:"picture,omitempty"`
}

type loginResponse struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// signupHandler godoc
//
//	@Summary	Create an account
//	@Tags		accounts
//	@Accept		json
//	@Produce	json
//	@Param		body	body		signupRequest	true	"account"
//	@Success	201		{object}	accountResponse
//	@Failure	400		{object}	httpx.ErrorBody
//	@Failure	409		{object}	httpx.ErrorBody
//	@Router		/signup [post]
func signupHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			metrics.RecordSignup("invalid")
			httpx.WriteError(w, r, log, err)
			return
		}

		a, err := svc.Create(r.Context(), req.Username, req.Password, Profile{
			Name:    req.Name,
			Bio:     req.Bio,
			Picture: req.Picture,
		})
		if err != nil {
			metrics.RecordSignup(resultLabel(err))
			httpx.WriteError(w, r, log, err)
			return
		}

		metrics.RecordSignup("ok")
		log.Info("account created", map[string]any{"username": a.Username})
		httpx.WriteJSON(w, http.StatusCreated, toAccountResponse(a))
	}
}

// loginHandler godoc
//
//	@Summary		Log in
//	@Description	Sets the AuthCookie session cookie; the token is also returned for Bearer clients.
//	@Tags			accounts
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"credentials"
//	@Success		200		{object}	loginResponse
//	@Failure		401		{object}	httpx.ErrorBody
//	@Failure		429		{object}	httpx.ErrorBody
//	@Router			/login [post]
func loginHandler(svc *Service, sessions SessionIssuer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			metrics.RecordLogin("invalid")
			httpx.WriteError(w, r, log, err)
			return
		}

		a, err := svc.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			metrics.RecordLogin(resultLabel(err))
			httpx.WriteError(w, r, log, err)
			return
		}

		token, exp, err := sessions.Issue(r.Context(), a.Username)
		if err != nil {
			metrics.RecordLogin("error")
			httpx.WriteError(w, r, log, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.AuthCookieName,
			Value:    token,
			Path:     "/",
			Expires:  exp,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		metrics.RecordLogin("ok")
		httpx.WriteJSON(w, http.StatusOK, loginResponse{Username: a.Username, Token: token, ExpiresAt: exp})
	}
}

// logoutHandler godoc
//
//	@Summary	Log out
//	@Tags		accounts
//	@Success	204
//	@Router		/logout [post]
func logoutHandler(sessions SessionIssuer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := middleware.SessionToken(r); token != "" {
			// Un token inválido no tiene sesión que borrar.
			if err := sessions.Revoke(r.Context(), token); err != nil && !errors.Is(err, errs.ErrUnauthorized) {
				httpx.WriteError(w, r, log, err)
				return
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.AuthCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

// meHandler godoc
//
//	@Summary	Current account
//	@Tags		accounts
//	@Produce	json
//	@Success	200	{object}	accountResponse
//	@Failure	401	{object}	httpx.ErrorBody
//	@Router		/me [get]
func meHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		writeAccount(w, r, svc, log, claims.Username)
	}
}

func getAccountHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeAccount(w, r, svc, log, chi.URLParam(r, "username"))
	}
}

func writeAccount(w http.ResponseWriter, r *http.Request, svc *Service, log logger.Logger, username string) {
	a, err := svc.Get(r.Context(), username)
	if err != nil {
		httpx.WriteError(w, r, log, err)
		return
	}
	if a == nil {
		httpx.WriteError(w, r, log, errs.NotFound("user does not exist"))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(*a))
}

func toAccountResponse(a Account) accountResponse {
	return accountResponse{
		ID:       a.ID,
		Username: a.Username,
		Name:     a.Name,
		Bio:      a.Bio,
		Picture:  a.Picture,
	}
}

func resultLabel(err error) string {
	switch errs.Kind(err) {
	case errs.ErrValidation:
		return "invalid"
	case errs.ErrConflict:
		return "conflict"
	case errs.ErrUnauthorized:
		return "rejected"
	default:
		return "error"
	}
}
