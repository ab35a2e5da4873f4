package pets

import (
	"errors"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-adoption/internal/errs"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/httpx"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/platform/uploads"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, images *uploads.Store, log logger.Logger) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Use(middleware.RequireAuth)

		pr.Post("/", createPetHandler(svc, images, log))
		pr.Get("/", listPetsHandler(svc, log))
		pr.Get("/{petID}", getPetHandler(svc, log))
		pr.Get("/{petID}/history", petHistoryHandler(svc, log))

		// Solo el dueño actual puede transferir (lo chequea el servicio).
		pr.Post("/{petID}/transfer", transferPetHandler(svc, log))
	})
}

type createPetRequest struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Age         any    `json:"age"`
	Zipcode     string `json:"zipcode"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
	Image       string `json:"image"`
}

type transferRequest struct {
	NewOwner string `json:"new_owner"`
}

type petResponse struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Age         int       `json:"age"`
	Zipcode     string    `json:"zipcode"`
	Description string    `json:"description"`
	Tag         string    `json:"tag"`
	Image       string    `json:"image"`
	PriorOwners []string  `json:"prior_owners"`
	CreatedAt   time.Time `json:"created_at"`
}

// createPetHandler godoc
//
//	@Summary		Publish a pet for adoption
//	@Description	Accepts JSON (image = existing ref) or multipart/form-data with a "file" part.
//	@Tags			pets
//	@Accept			json,mpfd
//	@Produce		json
//	@Param			body	body		createPetRequest	false	"pet"
//	@Success		201		{object}	petResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		401		{object}	httpx.ErrorBody
//	@Router			/pets [post]
func createPetHandler(svc *Service, images *uploads.Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		req, saved, err := decodeCreatePet(w, r, images)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		p, err := svc.Create(r.Context(), claims.Username, CreateInput{
			Name:        req.Name,
			Species:     req.Species,
			Age:         jsonAge(req.Age),
			Zipcode:     req.Zipcode,
			Description: req.Description,
			Tag:         req.Tag,
			ImageRef:    req.Image,
		})
		if err != nil {
			discardUpload(images, saved, log)
			httpx.WriteError(w, r, log, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// decodeCreatePet lee JSON o multipart. En multipart, si viene "file" se guarda
// y su referencia reemplaza el campo image; saved es esa referencia ("" si no hubo archivo).
func decodeCreatePet(w http.ResponseWriter, r *http.Request, images *uploads.Store) (req createPetRequest, saved string, err error) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt != "multipart/form-data" {
		err = httpx.DecodeJSON(w, r, &req)
		return req, "", err
	}

	r.Body = http.MaxBytesReader(w, r.Body, uploads.MaxBytes+httpx.MaxBodyBytes)
	if err := r.ParseMultipartForm(httpx.MaxBodyBytes); err != nil {
		return req, "", errs.Validation("invalid multipart form")
	}

	req = createPetRequest{
		Name:        r.FormValue("name"),
		Species:     r.FormValue("species"),
		Age:         formAge(r.FormValue("age")),
		Zipcode:     r.FormValue("zipcode"),
		Description: r.FormValue("description"),
		Tag:         r.FormValue("tag"),
		Image:       r.FormValue("image"),
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

// discardUpload borra la imagen de un create rechazado.
func discardUpload(images *uploads.Store, ref string, log logger.Logger) {
	if images == nil || ref == "" {
		return
	}
	if err := images.Remove(ref); err != nil {
		log.Warn("discard upload failed", map[string]any{"ref": ref, "error": err})
	}
}

// jsonAge pasa a int un número JSON entero. Cualquier otro valor (string
// numérico incluido) sigue sin tocar y lo rechaza el servicio.
func jsonAge(v any) any {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return v
	}
	return int(f)
}

// formAge parsea el campo age de un form, donde todo llega como string.
func formAge(s string) any {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return n
}

func parseAge(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errs.Validation("invalid input: age")
	}
	return n, nil
}

// listPetsHandler godoc
//
//	@Summary	List pets
//	@Tags		pets
//	@Produce	json
//	@Param		name	query		string	false	"exact name"
//	@Param		species	query		string	false	"exact species"
//	@Param		age		query		int		false	"exact age"
//	@Param		zipcode	query		string	false	"5-digit zipcode"
//	@Param		tag		query		string	false	"tag"
//	@Success	200		{array}		petResponse
//	@Failure	400		{object}	httpx.ErrorBody
//	@Router		/pets [get]
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := Filter{
			Name:    q.Get("name"),
			Species: q.Get("species"),
			Zipcode: q.Get("zipcode"),
			Tag:     q.Get("tag"),
		}
		if raw := strings.TrimSpace(q.Get("age")); raw != "" {
			age, err := parseAge(raw)
			if err != nil {
				httpx.WriteError(w, r, log, err)
				return
			}
			f.Age = &age
		}

		items, err := svc.List(r.Context(), f)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
//
//	@Summary	Pet profile with ownership history
//	@Tags		pets
//	@Produce	json
//	@Param		petID	path		string	true	"pet id"
//	@Success	200		{object}	petResponse
//	@Failure	404		{object}	httpx.ErrorBody
//	@Router		/pets/{petID} [get]
func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

type historyResponse struct {
	PetID       string   `json:"pet_id"`
	PriorOwners []string `json:"prior_owners"`
}

// petHistoryHandler godoc
//
//	@Summary	Prior owners of a pet, oldest first
//	@Tags		pets
//	@Produce	json
//	@Param		petID	path		string	true	"pet id"
//	@Success	200		{object}	historyResponse
//	@Failure	404		{object}	httpx.ErrorBody
//	@Router		/pets/{petID}/history [get]
func petHistoryHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		prior, err := svc.History(r.Context(), petID)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		if prior == nil {
			prior = []string{}
		}
		httpx.WriteJSON(w, http.StatusOK, historyResponse{PetID: petID, PriorOwners: prior})
	}
}

// transferPetHandler godoc
//
//	@Summary	Transfer a pet to another user
//	@Tags		pets
//	@Accept		json
//	@Produce	json
//	@Param		petID	path		string			true	"pet id"
//	@Param		body	body		transferRequest	true	"new owner"
//	@Success	200		{object}	petResponse
//	@Failure	403		{object}	httpx.ErrorBody
//	@Failure	404		{object}	httpx.ErrorBody
//	@Failure	409		{object}	httpx.ErrorBody
//	@Router		/pets/{petID}/transfer [post]
func transferPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req transferRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		petID := chi.URLParam(r, "petID")
		moved, err := svc.TransferOwnership(r.Context(), petID, claims.Username, req.NewOwner)
		if err != nil {
			metrics.RecordTransfer(transferResult(err))
			httpx.WriteError(w, r, log, err)
			return
		}
		if !moved {
			// Otra transferencia ganó entre la lectura y el update.
			metrics.RecordTransfer("conflict")
			httpx.WriteError(w, r, log, errs.Conflict("pet was transferred concurrently"))
			return
		}
		metrics.RecordTransfer("ok")

		p, err := svc.Get(r.Context(), petID)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		log.Info("pet transferred", map[string]any{
			"pet_id": petID,
			"from":   claims.Username,
			"to":     p.OwnerUsername,
		})
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func transferResult(err error) string {
	switch errs.Kind(err) {
	case errs.ErrForbidden:
		return "forbidden"
	case errs.ErrNotFound:
		return "not_found"
	case errs.ErrConflict:
		return "conflict"
	case errs.ErrValidation:
		return "invalid"
	default:
		return "error"
	}
}

func toPetResponse(p Pet) petResponse {
	prior := p.PriorOwners
	if prior == nil {
		prior = []string{}
	}
	return petResponse{
		ID:          p.ID,
		Owner:       p.OwnerUsername,
		Name:        p.Name,
		Species:     p.Species,
		Age:         p.Age,
		Zipcode:     p.Zipcode,
		Description: p.Description,
		Tag:         p.Tag,
		Image:       p.ImageRef,
		PriorOwners: prior,
		CreatedAt:   p.CreatedAt,
	}
}
