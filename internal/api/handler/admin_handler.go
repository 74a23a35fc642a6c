package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
	"github.com/cryptodata/crypto-data-api/internal/core/ports"
)

// AdminHandler serves the administrative account and audit-log surface.
type AdminHandler struct {
	userService  ports.UserService
	auditService ports.AuditService
}

func NewAdminHandler(userService ports.UserService, auditService ports.AuditService) *AdminHandler {
	return &AdminHandler{userService: userService, auditService: auditService}
}

type roleUpdateRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type logsResponse struct {
	Logs  []*domain.AuditRecord `json:"logs"`
	Total int64                 `json:"total"`
	Skip  int                   `json:"skip"`
	Limit int                   `json:"limit"`
}

type statsResponse struct {
	Users domain.UserCounts  `json:"users"`
	Logs  domain.AuditCounts `json:"logs"`
}

type myRoleResponse struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	IsAdmin  bool        `json:"is_admin"`
}

// ListUsers handles GET /admin/users.
//
// @Summary      List accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Accounts to skip"
// @Param        limit  query     int  false  "Accounts to return"
// @Success      200   {array}   domain.User
// @Failure      403   {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	skip := intQuery(c, "skip", 0)
	limit := intQuery(c, "limit", 100)

	users, err := h.userService.ListUsers(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser handles GET /admin/users/:id.
func (h *AdminHandler) GetUser(c echo.Context) error {
	user, err := h.userService.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateRole handles PUT /admin/users/:id/role.
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	var req roleUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateRole(c.Request().Context(), c.Param("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Deactivate handles PUT /admin/users/:id/deactivate. Tokens already
// issued to the account stay valid until expiry; the guard chain starts
// rejecting them at the account-active stage immediately.
func (h *AdminHandler) Deactivate(c echo.Context) error {
	user, err := h.userService.Deactivate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ListLogs handles GET /admin/logs.
//
// @Summary      Browse audit records
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        actor_id  query     string  false  "Filter by actor id"
// @Param        skip      query     int     false  "Records to skip"
// @Param        limit     query     int     false  "Records to return"
// @Success      200   {object}  logsResponse
// @Failure      403   {object}  errorResponse
// @Router       /admin/logs [get]
func (h *AdminHandler) ListLogs(c echo.Context) error {
	filter := ports.AuditFilter{
		ActorID: c.QueryParam("actor_id"),
		Skip:    intQuery(c, "skip", 0),
		Limit:   intQuery(c, "limit", 100),
	}

	logs, total, err := h.auditService.ListRecords(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logsResponse{
		Logs:  logs,
		Total: total,
		Skip:  filter.Skip,
		Limit: filter.Limit,
	})
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(c echo.Context) error {
	users, logs, err := h.auditService.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{Users: users, Logs: logs})
}

// MyRole handles GET /admin/my-role. Unlike the rest of the admin
// surface it only requires an active account.
func (h *AdminHandler) MyRole(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, myRoleResponse{
		Username: user.Username,
		Role:     user.Role,
		IsAdmin:  user.Role == domain.RoleAdmin,
	})
}

// intQuery parses a non-negative integer query parameter, falling back
// to def on absence or garbage.
func intQuery(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
