package entity

// ProductAvailability is one row of the availability map maintained by the
// admin surface. Products absent from the map are treated as available.
type ProductAvailability struct {
	ProductID string `json:"product_id"`
	Available bool   `json:"is_available"`
}

// ShopSettings holds the manual open/closed switch. The manual switch wins
// over working hours.
type ShopSettings struct {
	ID     int  `json:"id"`
	IsOpen bool `json:"is_open"`
}

// WorkingHours is one weekday row. Times are "HH:MM" 24h strings, compared
// lexically.
type WorkingHours struct {
	ID          int    `json:"id"`
	DayOfWeek   int    `json:"day_of_week"` // 0 = Sunday
	IsClosed    bool   `json:"is_closed"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
}

// CloseReason says why the shop is currently closed.
type CloseReason string

const (
	CloseReasonManual CloseReason = "manual"
	CloseReasonHours  CloseReason = "hours"
)

// ShopStatus is the computed open/closed state served to the storefront.
type ShopStatus struct {
	Open         bool        `json:"is_open"`
	Reason       CloseReason `json:"reason,omitempty"`
	NextOpenTime string      `json:"next_open_time,omitempty"`
}
