package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"scoutai/config"
	ledgerRepo "scoutai/database/repository/ledger"
)

func bookingFilterFromQuery(c *gin.Context) ledgerRepo.BookingFilter {
	filter := ledgerRepo.BookingFilter{
		Status:   c.Query("status"),
		Location: c.Query("location"),
		Search:   c.Query("search"),
	}
	if filter.Status == "All" {
		filter.Status = ""
	}
	if filter.Location == "All" {
		filter.Location = ""
	}
	return filter
}

// AdminListBookingsHandler returns the joined booking rows, filtered.
func (hb *HandlerBundle) AdminListBookingsHandler(c *gin.Context) {
	bookings, err := hb.AdminService.ListBookings(c.Request.Context(), bookingFilterFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// AdminListCustomersHandler returns all customers.
func (hb *HandlerBundle) AdminListCustomersHandler(c *gin.Context) {
	customers, err := hb.AdminService.ListCustomers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list customers", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers, "count": len(customers)})
}

// AdminMetricsHandler returns the dashboard headline metrics.
func (hb *HandlerBundle) AdminMetricsHandler(c *gin.Context) {
	metrics, err := hb.AdminService.GetMetrics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute metrics", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// AdminAnalyticsHandler returns the chart aggregates.
func (hb *HandlerBundle) AdminAnalyticsHandler(c *gin.Context) {
	ctx := c.Request.Context()
	revenue, err := hb.AdminService.RevenueByDestination(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute analytics", "details": err.Error()})
		return
	}
	popularity, err := hb.AdminService.PackagePopularity(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute analytics", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"revenue_by_destination": revenue,
		"package_popularity":     popularity,
	})
}

// AdminUpdateStatusHandler changes one booking's status.
func (hb *HandlerBundle) AdminUpdateStatusHandler(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.AdminService.UpdateBookingStatus(c.Request.Context(), bookingID, input.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated", "id": bookingID, "status": input.Status})
}

// AdminReindexHandler rebuilds the knowledge base from the docs
// directory.
func (hb *HandlerBundle) AdminReindexHandler(c *gin.Context) {
	hb.Knowledge.Index().Reload(config.AppConfig.DocsDir)
	c.JSON(http.StatusOK, gin.H{"message": "knowledge base rebuilt", "chunks": hb.Knowledge.Index().Len()})
}

// AdminExportHandler streams the filtered booking view as CSV.
func (hb *HandlerBundle) AdminExportHandler(c *gin.Context) {
	data, err := hb.AdminService.ExportBookingsCSV(c.Request.Context(), bookingFilterFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export bookings", "details": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="bookings.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}
