package handler

import (
	"errors"
	"net/http"

	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type CountryHandler struct {
	countryService service.CountryService
}

func NewCountryHandler(countryService service.CountryService) *CountryHandler {
	return &CountryHandler{countryService: countryService}
}

// RegisterRoutes registers country routes. Reads are public; writes require
// the admin group.
func (h *CountryHandler) RegisterRoutes(public, admin *gin.RouterGroup) {
	countries := public.Group("/countries")
	{
		countries.GET("", h.List)
		countries.GET("/:id", h.Get)
	}

	adminCountries := admin.Group("/countries")
	{
		adminCountries.POST("", h.Create)
		adminCountries.DELETE("/:id", h.Delete)
	}
}

// Create registers a new country
// POST /api/admin/countries
func (h *CountryHandler) Create(c *gin.Context) {
	var req dto.CreateCountryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	country, err := h.countryService.Create(req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateName) {
			c.JSON(http.StatusConflict, gin.H{"error": "country name already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create country"})
		return
	}

	c.JSON(http.StatusCreated, country)
}

func (h *CountryHandler) Get(c *gin.Context) {
	country, err := h.countryService.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "country not found"})
		return
	}
	c.JSON(http.StatusOK, country)
}

func (h *CountryHandler) List(c *gin.Context) {
	var query dto.ListCountriesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.countryService.List(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list countries"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// Delete removes a country; refused while services still reference it
// DELETE /api/admin/countries/:id
func (h *CountryHandler) Delete(c *gin.Context) {
	err := h.countryService.Delete(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCountryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "country not found"})
			return
		}
		if errors.Is(err, service.ErrCountryInUse) {
			c.JSON(http.StatusConflict, gin.H{"error": "country has registered services"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete country"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "country deleted"})
}
