package reservation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"moffatbay/internal/domain"
	"moffatbay/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublic mounts the booking endpoint. It runs behind optional auth
// so anonymous guests can book while signed-in customers get their profile
// linked automatically.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.Create)
}

// RegisterProtected mounts the lifecycle endpoints, which all require a
// signed-in customer or staff member.
func (h *Handler) RegisterProtected(rg *gin.RouterGroup) {
	rg.GET("/reservations/:public_id", h.Get)
	rg.POST("/reservations/search", h.Search)
	rg.POST("/reservations/:public_id/confirm", h.Confirm)
	rg.POST("/reservations/:public_id/cancel", h.Cancel)
	rg.POST("/reservations/:public_id/retry", h.Retry)
	rg.PUT("/reservations/:public_id", h.Modify)
	rg.POST("/reservations/:public_id/share", h.Share)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor := actorFrom(c)
	if req.CustomerID != nil && !actor.Staff {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only staff can book on behalf of a customer")
		return
	}

	result, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

func (h *Handler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), actorFrom(c), c.Param("public_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	found, err := h.service.Search(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"reservations": found,
		"no_results":   len(found) == 0,
	})
}

func (h *Handler) Confirm(c *gin.Context) {
	result, err := h.service.Confirm(c.Request.Context(), actorFrom(c), c.Param("public_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Cancel(c *gin.Context) {
	result, alreadyCancelled, err := h.service.Cancel(c.Request.Context(), actorFrom(c), c.Param("public_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"reservation":       result.Reservation,
		"already_cancelled": alreadyCancelled,
	})
}

func (h *Handler) Retry(c *gin.Context) {
	result, err := h.service.RetryHold(c.Request.Context(), actorFrom(c), c.Param("public_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Modify(c *gin.Context) {
	var req ModifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.service.Modify(c.Request.Context(), actorFrom(c), c.Param("public_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Share(c *gin.Context) {
	var req ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "A valid email address is required")
		return
	}

	if err := h.service.Share(c.Request.Context(), actorFrom(c), c.Param("public_id"), req.Email); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sent_to": req.Email})
}

// bindError reports a malformed body with the binding failure attached so
// form clients can show per-field messages.
func bindError(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
		"Invalid request body", err.Error())
}

func actorFrom(c *gin.Context) Actor {
	return Actor{
		UserID: c.GetInt64("user_id"),
		Staff:  c.GetString("role") == string(domain.RoleStaff),
	}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNoCustomerProfile):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrNotOnHold), errors.Is(err, ErrHoldExpired), errors.Is(err, ErrNoLongerAvailable):
		response.Error(c, http.StatusConflict, "STATE_CONFLICT", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
