package handler

import (
	"context"
	"net/http"
	"strconv"

	"food-facility-api/internal/models"
	"food-facility-api/internal/service"

	"github.com/gin-gonic/gin"
)

// FacilityService interface for dependency injection
type FacilityService interface {
	ListFacilities(context.Context) ([]*models.Facility, error)
	SearchByApplicant(context.Context, string, string) ([]*models.Facility, error)
	SearchByStreet(context.Context, string) ([]*models.Facility, error)
	SearchByGeohash(context.Context, string) ([]*models.Facility, error)
	SearchNearby(context.Context, service.NearbyQuery) ([]*models.Facility, error)
}

// FacilityHandler handles facility lookup requests
type FacilityHandler struct {
	service          FacilityService
	defaultNeighbors int
}

// NewFacilityHandler creates a new facility handler. defaultNeighbors is the
// result count used by nearby searches that do not pass one.
func NewFacilityHandler(svc FacilityService, defaultNeighbors int) *FacilityHandler {
	return &FacilityHandler{service: svc, defaultNeighbors: defaultNeighbors}
}

// Register mounts the facility routes on r.
func (h *FacilityHandler) Register(r gin.IRoutes) {
	r.GET("/", h.ListFacilities)
	r.GET("/facilities", h.ListFacilities)
	r.GET("/search/applicant", h.SearchByApplicant)
	r.GET("/search/street", h.SearchByStreet)
	r.GET("/search/geohash", h.SearchByGeohash)
	r.GET("/search/nearby", h.SearchNearby)
}

// ListFacilities handles GET / and GET /facilities requests
//
//	@Summary	List every facility
//	@Tags		facilities
//	@Produce	json
//	@Success	200	{array}		models.Facility
//	@Failure	500	{object}	ErrorResponse
//	@Router		/ [get]
//	@Router		/facilities [get]
func (h *FacilityHandler) ListFacilities(c *gin.Context) {
	facilities, err := h.service.ListFacilities(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, facilities)
}

// SearchByApplicant handles GET /search/applicant requests
//
//	@Summary	Find facilities by exact applicant name
//	@Tags		search
//	@Produce	json
//	@Param		applicant	query		string	true	"Applicant name, matched exactly"
//	@Param		status		query		string	false	"Permit status, matched exactly"
//	@Success	200			{array}		models.Facility
//	@Failure	400			{object}	ErrorResponse
//	@Router		/search/applicant [get]
func (h *FacilityHandler) SearchByApplicant(c *gin.Context) {
	applicant, ok := c.GetQuery("applicant")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'applicant'"})
		return
	}

	facilities, err := h.service.SearchByApplicant(c.Request.Context(), applicant, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, facilities)
}

// SearchByStreet handles GET /search/street requests
//
//	@Summary	Find facilities whose address contains a string
//	@Tags		search
//	@Produce	json
//	@Param		street	query		string	true	"Case-sensitive address fragment"
//	@Success	200		{array}		models.Facility
//	@Failure	400		{object}	ErrorResponse
//	@Router		/search/street [get]
func (h *FacilityHandler) SearchByStreet(c *gin.Context) {
	street, ok := c.GetQuery("street")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'street'"})
		return
	}

	facilities, err := h.service.SearchByStreet(c.Request.Context(), street)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, facilities)
}

// SearchByGeohash handles GET /search/geohash requests
//
//	@Summary	Find facilities inside a geohash cell
//	@Tags		search
//	@Produce	json
//	@Param		prefix	query		string	true	"Geohash prefix, 1 to 12 characters"
//	@Success	200		{array}		models.Facility
//	@Failure	400		{object}	ErrorResponse
//	@Router		/search/geohash [get]
func (h *FacilityHandler) SearchByGeohash(c *gin.Context) {
	prefix := c.Query("prefix")
	if prefix == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'prefix'"})
		return
	}

	facilities, err := h.service.SearchByGeohash(c.Request.Context(), prefix)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, facilities)
}

// SearchNearby handles GET /search/nearby requests
//
//	@Summary		Find the facilities nearest to a point
//	@Description	Only APPROVED permits are searched unless approved_only is false or status is given.
//	@Tags			search
//	@Produce		json
//	@Param			latitude		query		number	true	"Latitude in decimal degrees"
//	@Param			longitude		query		number	true	"Longitude in decimal degrees"
//	@Param			count			query		int		false	"Number of facilities to return"
//	@Param			status			query		string	false	"Permit status to search"
//	@Param			approved_only	query		bool	false	"Search only APPROVED permits"	default(true)
//	@Success		200				{array}		models.Facility
//	@Failure		400				{object}	ErrorResponse
//	@Router			/search/nearby [get]
func (h *FacilityHandler) SearchNearby(c *gin.Context) {
	latStr := c.Query("latitude")
	lonStr := c.Query("longitude")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'latitude' and 'longitude'"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	count := h.defaultNeighbors
	if countStr := c.Query("count"); countStr != "" {
		count, err = strconv.Atoi(countStr)
		if err != nil || count < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a non-negative integer"})
			return
		}
	}

	approvedOnly := true
	if approvedStr := c.Query("approved_only"); approvedStr != "" {
		approvedOnly, err = strconv.ParseBool(approvedStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid approved_only format"})
			return
		}
	}

	status := c.Query("status")
	if status == "" && approvedOnly {
		status = models.StatusApproved
	}

	facilities, err := h.service.SearchNearby(c.Request.Context(), service.NearbyQuery{
		Latitude:  lat,
		Longitude: lon,
		Count:     count,
		Status:    status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, facilities)
}
