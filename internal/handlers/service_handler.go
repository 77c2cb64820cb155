package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/eventgenie/internal/domain/booking"
	"github.com/BruksfildServices01/eventgenie/internal/httperr"
	"github.com/BruksfildServices01/eventgenie/internal/middleware"
	"github.com/BruksfildServices01/eventgenie/internal/models"
	ucBooking "github.com/BruksfildServices01/eventgenie/internal/usecase/booking"
)

type ServiceHandler struct {
	repo  domain.Repository
	list  *ucBooking.ListServices
	block *ucBooking.BlockDates
}

func NewServiceHandler(
	repo domain.Repository,
	list *ucBooking.ListServices,
	block *ucBooking.BlockDates,
) *ServiceHandler {
	return &ServiceHandler{repo: repo, list: list, block: block}
}

// --------- Requests ---------

type DatesRequest struct {
	Dates []string `json:"dates" binding:"required,min=1"`
}

type BulkDatesRequest struct {
	ServiceIDs []string `json:"serviceIds"`
	Dates      []string `json:"dates"`
}

// --------- Catalog ---------

func (h *ServiceHandler) List(c *gin.Context) {
	in := ucBooking.ListServicesInput{
		Category: strings.TrimSpace(c.Query("category")),
		FoodType: strings.TrimSpace(c.Query("foodType")),
		Search:   strings.TrimSpace(c.Query("search")),
		Date:     strings.TrimSpace(c.Query("date")),
	}

	var ok bool
	if in.MinPrice, ok = floatQuery(c, "minPrice"); !ok {
		return
	}
	if in.MaxPrice, ok = floatQuery(c, "maxPrice"); !ok {
		return
	}
	if in.MinRating, ok = floatQuery(c, "minRating"); !ok {
		return
	}
	if in.MaxRating, ok = floatQuery(c, "maxRating"); !ok {
		return
	}

	h.respondList(c, in)
}

func (h *ServiceHandler) ByCategory(c *gin.Context) {
	category := strings.ToLower(c.Param("category"))
	if !models.ValidCategory(category) {
		httperr.BadRequest(c, "invalid_category", "Invalid category")
		return
	}
	h.respondList(c, ucBooking.ListServicesInput{
		Category: category,
		Date:     strings.TrimSpace(c.Query("date")),
	})
}

func (h *ServiceHandler) ByVendor(c *gin.Context) {
	h.respondList(c, ucBooking.ListServicesInput{
		VendorUsername: c.Param("vendorUsername"),
		Date:           strings.TrimSpace(c.Query("date")),
	})
}

func (h *ServiceHandler) Search(c *gin.Context) {
	h.respondList(c, ucBooking.ListServicesInput{
		Search: c.Param("query"),
		Date:   strings.TrimSpace(c.Query("date")),
	})
}

func (h *ServiceHandler) respondList(c *gin.Context, in ucBooking.ListServicesInput) {
	views, err := h.list.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	date := strings.TrimSpace(c.Query("date"))
	if date != "" && !domain.ValidDate(date) {
		httperr.Respond(c, domain.InvalidDate(date))
		return
	}

	svc, err := h.repo.GetService(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, orMissing(err, domain.ErrServiceNotFound))
		return
	}

	c.JSON(http.StatusOK, ucBooking.View(svc, date))
}

func (h *ServiceHandler) Reviews(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	svc, err := h.repo.GetService(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, orMissing(err, domain.ErrServiceNotFound))
		return
	}

	reviews := svc.Reviews
	if reviews == nil {
		reviews = []models.Review{}
	}
	c.JSON(http.StatusOK, gin.H{
		"reviews":       reviews,
		"averageRating": svc.AverageRating(),
		"totalReviews":  len(reviews),
	})
}

// --------- Blocked dates ---------

func (h *ServiceHandler) Block(c *gin.Context) {
	h.setDates(c, ucBooking.Block, "Dates blocked successfully")
}

func (h *ServiceHandler) Unblock(c *gin.Context) {
	h.setDates(c, ucBooking.Unblock, "Dates unblocked successfully")
}

func (h *ServiceHandler) setDates(c *gin.Context, mode ucBooking.BlockMode, message string) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req DatesRequest
	if !bindJSON(c, &req) {
		return
	}

	blocked, err := h.block.Execute(c.Request.Context(), middleware.Principal(c), id, req.Dates, mode)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      message,
		"blockedDates": blocked,
	})
}

func (h *ServiceHandler) BulkBlock(c *gin.Context) {
	h.setDatesBulk(c, ucBooking.Block, "Bulk block completed")
}

func (h *ServiceHandler) BulkUnblock(c *gin.Context) {
	h.setDatesBulk(c, ucBooking.Unblock, "Bulk unblock completed")
}

func (h *ServiceHandler) setDatesBulk(c *gin.Context, mode ucBooking.BlockMode, message string) {
	var req BulkDatesRequest
	if !bindJSON(c, &req) {
		return
	}

	results, err := h.block.ExecuteBulk(c.Request.Context(), middleware.Principal(c), req.ServiceIDs, req.Dates, mode)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"results": results,
	})
}
