package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stayhub/middleware"
	"stayhub/models"
	"stayhub/services/listing"

	listingRepo "stayhub/database/repository/listing"

	"github.com/gin-gonic/gin"
)

// CreateListing publishes a new listing owned by the authenticated host.
func CreateListing(c *gin.Context) {
	var l models.Listing
	if err := c.ShouldBindJSON(&l); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	hostID := c.GetString(middleware.CtxUserID)
	created, err := ListingSvc.CreateListing(hostID, &l)
	if err != nil {
		respondListingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetListing returns one listing by ID. Public.
func GetListing(c *gin.Context) {
	l, err := ListingSvc.GetListing(c.Param("id"))
	if err != nil {
		respondListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// UpdateListing replaces a listing's mutable fields. Owner or admin only.
func UpdateListing(c *gin.Context) {
	var l models.Listing
	if err := c.ShouldBindJSON(&l); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := ListingSvc.UpdateListing(
		c.GetString(middleware.CtxUserID),
		c.GetString(middleware.CtxUserRole),
		c.Param("id"),
		&l,
	)
	if err != nil {
		respondListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteListing removes a listing. Owner or admin only.
func DeleteListing(c *gin.Context) {
	err := ListingSvc.DeleteListing(
		c.GetString(middleware.CtxUserID),
		c.GetString(middleware.CtxUserRole),
		c.Param("id"),
	)
	if err != nil {
		respondListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "listing deleted"})
}

// SearchListings returns a page of listings matching the query parameters.
// Public.
func SearchListings(c *gin.Context) {
	filter := listingRepo.SearchFilter{
		Location:     c.Query("location"),
		PropertyType: c.Query("propertyType"),
		RoomType:     c.Query("roomType"),
		SortBy:       c.Query("sortBy"),
		SortOrder:    c.Query("sortOrder"),
	}
	if v := c.Query("minPrice"); v != "" {
		filter.MinPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := c.Query("maxPrice"); v != "" {
		filter.MaxPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := c.Query("guests"); v != "" {
		filter.MinGuests, _ = strconv.Atoi(v)
	}
	if v := c.Query("amenities"); v != "" {
		filter.Amenities = strings.Split(v, ",")
	}
	if v := c.Query("checkIn"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.CheckIn = &t
		}
	}
	if v := c.Query("checkOut"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.CheckOut = &t
		}
	}

	page, limit := pageParams(c)
	result, err := ListingSvc.Search(filter, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// HostListings returns a host's active listings. Public.
func HostListings(c *gin.Context) {
	page, limit := pageParams(c)
	result, err := ListingSvc.Search(listingRepo.SearchFilter{HostID: c.Param("hostId")}, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load listings"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// MyListings returns the authenticated host's own listings, any status.
func MyListings(c *gin.Context) {
	page, limit := pageParams(c)
	result, err := ListingSvc.ListByHost(c.GetString(middleware.CtxUserID), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load listings"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func respondListingError(c *gin.Context, err error) {
	var (
		validation *listing.ValidationError
		notFound   *listing.NotFoundError
		forbidden  *listing.AuthorizationError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}
