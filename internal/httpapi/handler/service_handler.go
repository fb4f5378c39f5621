package handler

import (
	"errors"
	"net/http"

	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ServiceHandler struct {
	catalogService service.CatalogService
}

func NewServiceHandler(catalogService service.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalogService: catalogService}
}

// RegisterRoutes registers service catalog routes. Reads are public;
// registering services requires an authenticated user.
func (h *ServiceHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	services := public.Group("/services")
	{
		services.GET("", h.List)
		services.GET("/:id", h.Get)
	}

	protectedServices := protected.Group("/services")
	{
		protectedServices.POST("", h.Create)
		protectedServices.GET("/places", h.LookupPlaces)
	}
}

// Create registers a new public service
// POST /api/services
func (h *ServiceHandler) Create(c *gin.Context) {
	var req dto.CreateServiceDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc, err := h.catalogService.Create(req)
	if err != nil {
		if errors.Is(err, service.ErrCountryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "country not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create service"})
		return
	}

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	svc, err := h.catalogService.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}
	c.JSON(http.StatusOK, svc)
}

// List retrieves services with keyword/category/country/rating filters
// GET /api/services
func (h *ServiceHandler) List(c *gin.Context) {
	var query dto.ListServicesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.catalogService.List(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list services"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// LookupPlaces searches the Places API to help register a service
// GET /api/services/places?query=...&type=...
func (h *ServiceHandler) LookupPlaces(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	results, err := h.catalogService.LookupPlaces(c.Request.Context(), query, c.Query("type"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "places lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
