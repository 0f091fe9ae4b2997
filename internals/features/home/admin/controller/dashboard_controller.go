package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "somabooks_backend/internals/helpers"

	bookModel "somabooks_backend/internals/features/catalog/books/model"
	orderModel "somabooks_backend/internals/features/shop/orders/model"
	reviewModel "somabooks_backend/internals/features/shop/reviews/model"
	userModel "somabooks_backend/internals/features/users/user/model"
)

// DashboardController: admin store overview numbers.
type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

type dashboardStats struct {
	TotalUsers     int64   `json:"total_users"`
	TotalBooks     int64   `json:"total_books"`
	TotalOrders    int64   `json:"total_orders"`
	TotalReviews   int64   `json:"total_reviews"`
	TodayOrders    int64   `json:"today_orders"`
	TodayRevenue   float64 `json:"today_revenue"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
}

type recentOrder struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      uuid.UUID `json:"user_id"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

type topBook struct {
	BookID       uuid.UUID `json:"book_id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	TotalSold    int       `json:"total_sold"`
	TotalRevenue float64   `json:"total_revenue"`
}

type revenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

/* =======================================================
   GET /api/admin/stats
======================================================= */

func (ctl *DashboardController) GetStats(c *fiber.Ctx) error {
	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var stats dashboardStats
	ctl.DB.Model(&userModel.UserModel{}).Count(&stats.TotalUsers)
	ctl.DB.Model(&bookModel.BookModel{}).Count(&stats.TotalBooks)
	ctl.DB.Model(&orderModel.OrderModel{}).Count(&stats.TotalOrders)
	ctl.DB.Model(&reviewModel.ReviewModel{}).
		Where("review_status = ?", reviewModel.ReviewStatusApproved).
		Count(&stats.TotalReviews)

	ctl.DB.Model(&orderModel.OrderModel{}).
		Where("order_created_at >= ?", startOfToday).
		Count(&stats.TodayOrders)

	paidStatuses := []string{
		orderModel.OrderStatusProcessing,
		orderModel.OrderStatusShipped,
		orderModel.OrderStatusDelivered,
	}
	ctl.DB.Model(&orderModel.OrderModel{}).
		Select("COALESCE(SUM(order_total_amount),0)").
		Where("order_created_at >= ? AND order_status IN ?", startOfToday, paidStatuses).
		Scan(&stats.TodayRevenue)
	ctl.DB.Model(&orderModel.OrderModel{}).
		Select("COALESCE(SUM(order_total_amount),0)").
		Where("order_created_at >= ? AND order_status IN ?", startOfMonth, paidStatuses).
		Scan(&stats.MonthlyRevenue)

	// latest 10 orders
	var orders []orderModel.OrderModel
	ctl.DB.Order("order_created_at DESC").Limit(10).Find(&orders)
	recent := make([]recentOrder, 0, len(orders))
	for _, o := range orders {
		recent = append(recent, recentOrder{
			OrderID:     o.OrderID,
			OrderNumber: o.OrderNumber,
			UserID:      o.OrderUserID,
			Status:      o.OrderStatus,
			TotalAmount: o.OrderTotalAmount,
			CreatedAt:   o.OrderCreatedAt,
		})
	}

	// top 5 sellers
	var books []bookModel.BookModel
	ctl.DB.Order("book_total_sold DESC").Limit(5).Find(&books)
	top := make([]topBook, 0, len(books))
	for _, b := range books {
		top = append(top, topBook{
			BookID:       b.BookID,
			Title:        b.BookTitle,
			Author:       b.BookAuthor,
			TotalSold:    b.BookTotalSold,
			TotalRevenue: b.BookTotalRevenue,
		})
	}

	// revenue over the last 7 days, delivered orders only
	chart := make([]revenuePoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := startOfToday.AddDate(0, 0, -i)
		next := day.AddDate(0, 0, 1)
		var revenue float64
		ctl.DB.Model(&orderModel.OrderModel{}).
			Select("COALESCE(SUM(order_total_amount),0)").
			Where("order_created_at >= ? AND order_created_at < ? AND order_status = ?",
				day, next, orderModel.OrderStatusDelivered).
			Scan(&revenue)
		chart = append(chart, revenuePoint{
			Date:    day.Format("2006-01-02"),
			Revenue: revenue,
		})
	}

	return helper.JsonOK(c, "Dashboard stats fetched successfully", fiber.Map{
		"stats":         stats,
		"recent_orders": recent,
		"top_books":     top,
		"revenue_chart": chart,
	})
}
