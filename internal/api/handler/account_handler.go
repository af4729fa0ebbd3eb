package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sktech/account-gateway/internal/core/domain"
	"github.com/sktech/account-gateway/internal/core/ports"
)

// AccountHandler exposes the staff-only account admin surface.
type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Create handles POST /v1/accounts.
//
// @Summary      Create an account (staff only)
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccountRequest  true  "Account details"
// @Success      201   {object}  accountResponse
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/accounts [post]
func (h *AccountHandler) Create(c echo.Context) error {
	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	account, err := h.accounts.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toAccountResponse(account))
}

// List handles GET /v1/accounts?role=. The default mirrors the admin landing
// view, which lists Administrator accounts.
//
// @Summary      List accounts by primary role
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        role  query     string  false  "Primary role"  default(Administrator)
// @Success      200   {array}   accountResponse
// @Failure      403   {object}  map[string]string
// @Router       /v1/accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	role := c.QueryParam("role")
	if role == "" {
		role = string(domain.RoleAdministrator)
	}

	accounts, err := h.accounts.ListByRole(c.Request().Context(), domain.Role(role))
	if err != nil {
		return err
	}

	out := make([]accountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, toAccountResponse(&accounts[i]))
	}
	return c.JSON(http.StatusOK, out)
}
