package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sgoap/sgoap-backend/internal/apperrors"
	portssvc "github.com/sgoap/sgoap-backend/internal/core/ports/services"
	"github.com/sgoap/sgoap-backend/internal/dto"
	"github.com/sgoap/sgoap-backend/internal/middleware"
)

// vendorHandler handles HTTP requests related to vendors and contracts.
type vendorHandler struct {
	vendorService portssvc.VendorSvcFacade
}

func newVendorHandler(vs portssvc.VendorSvcFacade) *vendorHandler {
	return &vendorHandler{vendorService: vs}
}

// registerVendorRoutes registers all vendor and contract routes.
func registerVendorRoutes(rg *gin.RouterGroup, vendorService portssvc.VendorSvcFacade) {
	h := newVendorHandler(vendorService)

	vendors := rg.Group("/vendors")
	{
		vendors.POST("", h.createVendor)
		vendors.GET("", h.listVendors)
		vendors.GET("/:id", h.getVendor)
		vendors.PUT("/:id", h.updateVendor)
		vendors.POST("/:id/contracts", h.createContract)
		vendors.GET("/:id/contracts", h.listContracts)
	}

	contracts := rg.Group("/contracts")
	{
		contracts.PUT("/:id", h.updateContract)
	}
}

// respondVendorError maps vendor service errors to HTTP codes.
func (h *vendorHandler) respondVendorError(c *gin.Context, err error, logger *slog.Logger, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Vendor management is restricted to Procurement"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid details"})
	case errors.Is(err, apperrors.ErrInvalidState):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Vendor is inactive"})
	default:
		logger.Error("Vendor operation failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Operation failed"})
	}
}

// createVendor godoc
// @Summary Register a vendor
// @Description Registers a new vendor. Procurement and elevated roles only.
// @Tags vendors
// @Accept json
// @Produce json
// @Param vendor body dto.CreateVendorRequest true "Vendor details"
// @Success 201 {object} dto.VendorResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vendors [post]
func (h *vendorHandler) createVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	vendor, err := h.vendorService.CreateVendor(c.Request.Context(), actor, req)
	if err != nil {
		h.respondVendorError(c, err, logger, "create_vendor")
		return
	}

	c.JSON(http.StatusCreated, dto.ToVendorResponse(vendor))
}

// getVendor godoc
// @Summary Get a vendor by ID
// @Tags vendors
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 200 {object} dto.VendorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vendors/{id} [get]
func (h *vendorHandler) getVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	vendor, err := h.vendorService.GetVendorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondVendorError(c, err, logger, "get_vendor")
		return
	}

	c.JSON(http.StatusOK, dto.ToVendorResponse(vendor))
}

// listVendors godoc
// @Summary List vendors
// @Tags vendors
// @Produce json
// @Param activeOnly query bool false "Only active vendors"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListVendorsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vendors [get]
func (h *vendorHandler) listVendors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListVendorsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	vendors, err := h.vendorService.ListVendors(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list vendors", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list vendors"})
		return
	}

	responses := make([]dto.VendorResponse, len(vendors))
	for i := range vendors {
		responses[i] = dto.ToVendorResponse(&vendors[i])
	}
	c.JSON(http.StatusOK, dto.ListVendorsResponse{Vendors: responses})
}

// updateVendor godoc
// @Summary Update a vendor
// @Description Updates vendor details or active status. Procurement and elevated roles only.
// @Tags vendors
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID"
// @Param vendor body dto.UpdateVendorRequest true "Fields to update"
// @Success 200 {object} dto.VendorResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vendors/{id} [put]
func (h *vendorHandler) updateVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	vendor, err := h.vendorService.UpdateVendor(c.Request.Context(), c.Param("id"), actor, req)
	if err != nil {
		h.respondVendorError(c, err, logger, "update_vendor")
		return
	}

	c.JSON(http.StatusOK, dto.ToVendorResponse(vendor))
}

// createContract godoc
// @Summary Record a contract against a vendor
// @Description Records a contract. The vendor must be active. Procurement and elevated roles only.
// @Tags vendors
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID"
// @Param contract body dto.CreateContractRequest true "Contract details"
// @Success 201 {object} dto.ContractResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Vendor inactive"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vendors/{id}/contracts [post]
func (h *vendorHandler) createContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	contract, err := h.vendorService.CreateContract(c.Request.Context(), c.Param("id"), actor, req)
	if err != nil {
		h.respondVendorError(c, err, logger, "create_contract")
		return
	}

	c.JSON(http.StatusCreated, dto.ToContractResponse(contract))
}

// listContracts godoc
// @Summary List a vendor's contracts
// @Tags vendors
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 200 {object} dto.ListContractsResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vendors/{id}/contracts [get]
func (h *vendorHandler) listContracts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	contracts, err := h.vendorService.ListContractsByVendor(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondVendorError(c, err, logger, "list_contracts")
		return
	}

	responses := make([]dto.ContractResponse, len(contracts))
	for i := range contracts {
		responses[i] = dto.ToContractResponse(&contracts[i])
	}
	c.JSON(http.StatusOK, dto.ListContractsResponse{Contracts: responses})
}

// updateContract godoc
// @Summary Update a contract
// @Description Updates a contract's title, end date or status. Procurement and elevated roles only.
// @Tags vendors
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param contract body dto.UpdateContractRequest true "Fields to update"
// @Success 200 {object} dto.ContractResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /contracts/{id} [put]
func (h *vendorHandler) updateContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	contract, err := h.vendorService.UpdateContract(c.Request.Context(), c.Param("id"), actor, req)
	if err != nil {
		h.respondVendorError(c, err, logger, "update_contract")
		return
	}

	c.JSON(http.StatusOK, dto.ToContractResponse(contract))
}
