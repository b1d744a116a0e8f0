package admin

import "time"

type UserListItem struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	BookingCount int64     `json:"booking_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active blocked"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled failed"`
}

type RecentBooking struct {
	ID          int64     `json:"id"`
	UserName    string    `json:"user_name,omitempty"`
	EventName   string    `json:"event_name,omitempty"`
	TotalAmount float64   `json:"total_amount"`
	BookedAt    time.Time `json:"booked_at"`
}

type AnalyticsSummary struct {
	TotalUsers      int64           `json:"total_users"`
	TotalBookings   int64           `json:"total_bookings"`
	TotalRevenue    float64         `json:"total_revenue"`
	AvgBookingValue float64         `json:"avg_booking_value"`
	RecentBookings  []RecentBooking `json:"recent_bookings"`
}
