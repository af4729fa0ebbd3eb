package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sktech/account-gateway/internal/core/ports"
)

// CompanyHandler exposes company administration to staff and Administrators.
type CompanyHandler struct {
	companies ports.CompanyService
}

func NewCompanyHandler(companies ports.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

func companyID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid company id")
	}
	return id, nil
}

// Create handles POST /v1/companies.
//
// @Summary      Create a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      companyRequest  true  "Company details"
// @Success      201   {object}  companyResponse
// @Failure      422   {object}  map[string]string
// @Router       /v1/companies [post]
func (h *CompanyHandler) Create(c echo.Context) error {
	var req companyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	input, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid license_end date")
	}

	company, err := h.companies.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCompanyResponse(company))
}

// Get handles GET /v1/companies/:id.
//
// @Summary      Get a company
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int  true  "Company id"
// @Success      200   {object}  companyResponse
// @Failure      404   {object}  map[string]string
// @Router       /v1/companies/{id} [get]
func (h *CompanyHandler) Get(c echo.Context) error {
	id, err := companyID(c)
	if err != nil {
		return err
	}

	company, err := h.companies.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCompanyResponse(company))
}

// List handles GET /v1/companies.
//
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}   companyResponse
// @Router       /v1/companies [get]
func (h *CompanyHandler) List(c echo.Context) error {
	companies, err := h.companies.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]companyResponse, 0, len(companies))
	for i := range companies {
		out = append(out, toCompanyResponse(&companies[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Update handles PUT /v1/companies/:id. The license start date is immutable
// and absent from the request schema.
//
// @Summary      Update a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Company id"
// @Param        body  body      companyRequest  true  "Company details"
// @Success      200   {object}  companyResponse
// @Failure      422   {object}  map[string]string
// @Router       /v1/companies/{id} [put]
func (h *CompanyHandler) Update(c echo.Context) error {
	id, err := companyID(c)
	if err != nil {
		return err
	}

	var req companyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	input, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid license_end date")
	}

	company, err := h.companies.Update(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCompanyResponse(company))
}

// Delete handles DELETE /v1/companies/:id. A company still referenced by any
// account cannot be deleted.
//
// @Summary      Delete a company
// @Tags         companies
// @Security     BearerAuth
// @Param        id  path  int  true  "Company id"
// @Success      204
// @Failure      409  {object}  map[string]string
// @Router       /v1/companies/{id} [delete]
func (h *CompanyHandler) Delete(c echo.Context) error {
	id, err := companyID(c)
	if err != nil {
		return err
	}

	if err := h.companies.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
