// Package v1 provides the REST API handlers for the player catalog.
package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/scoutline/player-catalog-server/internal/domain"
	"github.com/scoutline/player-catalog-server/internal/httpclient"
	"github.com/scoutline/player-catalog-server/internal/logger"
	"github.com/scoutline/player-catalog-server/internal/provider"
	"github.com/scoutline/player-catalog-server/internal/service"
	"github.com/scoutline/player-catalog-server/internal/versions"
)

// pageSizeAll requests a page with no upper bound on its size.
const pageSizeAll = "all"

// ListPlayersResponse represents one page of catalog results
type ListPlayersResponse struct {
	Players    []domain.Player `json:"players"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalCount int64           `json:"totalCount"`
}

// SyncRequest represents a club synchronization request
type SyncRequest struct {
	ClubID    string `json:"clubId" validate:"required"`
	Overwrite bool   `json:"overwrite"`
}

// SyncResponse represents the outcome of a club synchronization
type SyncResponse struct {
	Success         bool  `json:"success"`
	InsertedPlayers int64 `json:"insertedPlayers,omitempty"`
	ModifiedPlayers int64 `json:"modifiedPlayers,omitempty"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// listPlayersQuery carries the raw query parameters of the list endpoint.
// Page and PageSize stay strings here: PageSize admits "all" and both are
// normalized after validation.
type listPlayersQuery struct {
	Position       string `validate:"omitempty"`
	IsActive       string `validate:"omitempty,oneof=true false"`
	ClubID         string
	BirthYearRange string `validate:"omitempty,birthyearrange"`
	Page           string `validate:"omitempty,numeric"`
	PageSize       string `validate:"omitempty,pagesize"`
}

// Routes defines the routes for the catalog API with dependency injection
type Routes struct {
	service  service.PlayerService
	validate *validator.Validate
}

// NewRoutes creates a new Routes instance with the provided service
func NewRoutes(svc service.PlayerService) *Routes {
	return &Routes{
		service:  svc,
		validate: newValidator(),
	}
}

// Router creates a new router for the catalog API
func Router(svc service.PlayerService) http.Handler {
	routes := NewRoutes(svc)

	r := chi.NewRouter()

	r.Get("/players", routes.listPlayers)
	r.Post("/players/sync", routes.syncClub)

	return r
}

func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// birthyearrange accepts the wire format "YYYY-YYYY".
	_ = validate.RegisterValidation("birthyearrange", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseBirthYearRange(fl.Field().String())
		return err == nil
	})

	// pagesize accepts an integer or the literal "all".
	_ = validate.RegisterValidation("pagesize", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == pageSizeAll {
			return true
		}
		_, err := strconv.Atoi(value)
		return err == nil
	})

	return validate
}

// listPlayers handles GET /api/v1/players
//
// @Summary		List players
// @Description	Get one page of players matching the filter plus the total matching count
// @Tags			players
// @Produce		json
// @Param			position		query		string	false	"Exact position match"
// @Param			isActive		query		bool	false	"Filter on activity status"
// @Param			clubId			query		string	false	"Exact club id match"
// @Param			birthYearRange	query		string	false	"Inclusive birth year range (YYYY-YYYY)"
// @Param			page			query		int		false	"1-based page number"	default(1)
// @Param			pageSize		query		string	false	"Page size, or 'all'"	default(10)
// @Success		200				{object}	ListPlayersResponse
// @Failure		400				{object}	ErrorResponse
// @Failure		500				{object}	ErrorResponse
// @Router			/api/v1/players [get]
func (rr *Routes) listPlayers(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := listPlayersQuery{
		Position:       params.Get("position"),
		IsActive:       params.Get("isActive"),
		ClubID:         params.Get("clubId"),
		BirthYearRange: params.Get("birthYearRange"),
		Page:           params.Get("page"),
		PageSize:       params.Get("pageSize"),
	}

	if err := rr.validate.Struct(&query); err != nil {
		rr.writeErrorResponse(w, "Invalid query parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	filter, err := buildFilter(query)
	if err != nil {
		rr.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	pagination, err := buildPagination(query)
	if err != nil {
		rr.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := rr.service.GetPlayers(r.Context(), filter, &pagination)
	if err != nil {
		logger.Errorf("Failed to list players: %v", err)
		rr.writeErrorResponse(w, "Failed to list players", http.StatusInternalServerError)
		return
	}

	rr.writeJSONResponse(w, ListPlayersResponse{
		Players:    page.Players,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalCount: page.TotalCount,
	})
}

// syncClub handles POST /api/v1/players/sync
//
// @Summary		Synchronize a club roster
// @Description	Pull the club roster from the provider and merge it into the catalog
// @Tags			players
// @Accept			json
// @Produce		json
// @Param			request	body		SyncRequest	true	"Club to synchronize"
// @Success		200		{object}	SyncResponse
// @Failure		400		{object}	ErrorResponse
// @Failure		502		{object}	ErrorResponse
// @Failure		500		{object}	ErrorResponse
// @Router			/api/v1/players/sync [post]
func (rr *Routes) syncClub(w http.ResponseWriter, r *http.Request) {
	var req SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rr.writeErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := rr.validate.Struct(&req); err != nil {
		rr.writeErrorResponse(w, "clubId is required", http.StatusBadRequest)
		return
	}

	result, err := rr.service.SyncClub(r.Context(), req.ClubID, req.Overwrite)
	if err != nil {
		rr.writeSyncError(w, req.ClubID, err)
		return
	}

	rr.writeJSONResponse(w, SyncResponse{
		Success:         true,
		InsertedPlayers: result.Inserted,
		ModifiedPlayers: result.Modified,
	})
}

// writeSyncError maps a sync failure onto a status code. Provider failures
// surface as 502 so callers can tell an upstream outage from a server bug.
func (rr *Routes) writeSyncError(w http.ResponseWriter, clubID string, err error) {
	logger.Errorf("Failed to sync club %s: %v", clubID, err)

	var httpErr *httpclient.HTTPError
	switch {
	case errors.Is(err, service.ErrInvalidClubID):
		rr.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, provider.ErrActiveStatusUnavailable), errors.As(err, &httpErr):
		rr.writeErrorResponse(w, "Provider request failed", http.StatusBadGateway)
	default:
		rr.writeErrorResponse(w, "Failed to sync club", http.StatusInternalServerError)
	}
}

func buildFilter(query listPlayersQuery) (*domain.Filter, error) {
	var opts []domain.FilterOption

	if query.Position != "" {
		opts = append(opts, domain.WithPosition(query.Position))
	}
	if query.IsActive != "" {
		isActive, err := strconv.ParseBool(query.IsActive)
		if err != nil {
			return nil, errors.New("isActive must be true or false")
		}
		opts = append(opts, domain.WithActive(isActive))
	}
	if query.ClubID != "" {
		opts = append(opts, domain.WithClubID(query.ClubID))
	}
	if query.BirthYearRange != "" {
		years, err := domain.ParseBirthYearRange(query.BirthYearRange)
		if err != nil {
			return nil, err
		}
		opts = append(opts, domain.WithBirthYearRange(years))
	}

	return domain.NewFilter(opts...), nil
}

func buildPagination(query listPlayersQuery) (domain.Pagination, error) {
	page := 0
	if query.Page != "" {
		parsed, err := strconv.Atoi(query.Page)
		if err != nil {
			return domain.Pagination{}, errors.New("page must be an integer")
		}
		page = parsed
	}

	if query.PageSize == pageSizeAll {
		return domain.NewUnlimitedPagination(page), nil
	}

	pageSize := 0
	if query.PageSize != "" {
		parsed, err := strconv.Atoi(query.PageSize)
		if err != nil {
			return domain.Pagination{}, errors.New("pageSize must be an integer or \"all\"")
		}
		pageSize = parsed
	}

	return domain.NewPagination(page, pageSize), nil
}

func (rr *Routes) writeJSONResponse(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Errorf("Failed to encode response: %v", err)
	}
}

func (rr *Routes) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		logger.Errorf("Failed to encode error response: %v", err)
	}
}

// HealthRouter creates a router for health check endpoints
func HealthRouter(svc service.PlayerService) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", healthHandler)
	r.Get("/readiness", readinessHandler(svc))
	r.Get("/version", versionHandler)

	return r
}

// healthHandler handles health check requests
//
// @Summary		Health check
// @Description	Check if the catalog API is healthy
// @Tags			system
// @Produce		json
// @Success		200	{object}	map[string]string
// @Router			/health [get]
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// readinessHandler handles readiness check requests
//
// @Summary		Readiness check
// @Description	Check if the catalog API is ready to serve requests
// @Tags			system
// @Produce		json
// @Success		200	{object}	map[string]string
// @Failure		503	{object}	ErrorResponse
// @Router			/readiness [get]
func readinessHandler(svc service.PlayerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.CheckReadiness(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			if encodeErr := json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Service not ready: " + err.Error(),
			}); encodeErr != nil {
				logger.Errorf("Failed to encode readiness error response: %v", encodeErr)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	}
}

// versionHandler handles version information requests
//
// @Summary		Version information
// @Description	Get version information about the catalog API
// @Tags			system
// @Produce		json
// @Success		200	{object}	versions.VersionInfo
// @Router			/version [get]
func versionHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(versions.GetVersionInfo()); err != nil {
		logger.Errorf("Failed to encode version info: %v", err)
	}
}
