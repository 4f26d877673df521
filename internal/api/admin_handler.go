package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/playon/turf-booking-backend/internal/booking"
	"github.com/playon/turf-booking-backend/internal/pkg/response"
	"github.com/playon/turf-booking-backend/internal/turf"
	"github.com/playon/turf-booking-backend/internal/user"
)

type AdminHandler struct {
	userService    user.Service
	turfService    turf.Service
	bookingService booking.Service
}

func NewAdminHandler(userService user.Service, turfService turf.Service, bookingService booking.Service) *AdminHandler {
	return &AdminHandler{
		userService:    userService,
		turfService:    turfService,
		bookingService: bookingService,
	}
}

// DashboardResponse is the payload for GET /v1/admin/dashboard.
type DashboardResponse struct {
	TotalUsers     int               `json:"total_users"`
	TotalTurfs     int               `json:"total_turfs"`
	TotalBookings  int               `json:"total_bookings"`
	TotalRevenue   float64           `json:"total_revenue"`
	RecentBookings []BookingSummary `json:"recent_bookings"`
}

type BookingSummary struct {
	ID        string    `json:"id"`
	UserName  string    `json:"user_name"`
	TurfName  string    `json:"turf_name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

//
// GET /v1/admin/dashboard
//

func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.userService.Count(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	turfs, err := h.turfService.Count(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	bookings, err := h.bookingService.Count(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	revenue, err := h.bookingService.ConfirmedRevenue(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}

	recent, _, err := h.bookingService.List(ctx, booking.Filter{Page: 1, PageSize: 5})
	if err != nil {
		response.Error(c, err)
		return
	}

	summaries := make([]BookingSummary, len(recent))
	for i, b := range recent {
		summaries[i] = BookingSummary{
			ID:        b.ID,
			UserName:  b.UserName,
			TurfName:  b.TurfName,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Status:    string(b.Status),
		}
	}

	c.JSON(http.StatusOK, DashboardResponse{
		TotalUsers:     users,
		TotalTurfs:     turfs,
		TotalBookings:  bookings,
		TotalRevenue:   revenue,
		RecentBookings: summaries,
	})
}

//
// GET /v1/admin/bookings/export
//

// ExportBookings streams the full booking list as an xlsx workbook.
// Optional from/to query parameters (YYYY-MM-DD) narrow the range.
func (h *AdminHandler) ExportBookings(c *gin.Context) {
	filter := booking.Filter{Page: 1, PageSize: 10000}

	if v := c.Query("from"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
			return
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
			return
		}
		filter.To = &t
	}

	bookings, _, err := h.bookingService.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Bookings"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "User", "Turf", "Date", "Start", "End", "Status", "Created At"}
	for i, head := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, head)
	}

	for row, b := range bookings {
		values := []interface{}{
			b.ID,
			b.UserName,
			b.TurfName,
			b.Date.Format("2006-01-02"),
			b.StartTime.Format("15:04"),
			b.EndTime.Format("15:04"),
			string(b.Status),
			b.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")

	if err := f.Write(c.Writer); err != nil {
		// Response already started, nothing sensible left to send.
		return
	}
}
