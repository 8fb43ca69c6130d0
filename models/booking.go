package models

import "time"

// Booking statuses. Only non-cancelled bookings occupy time on an agent's
// calendar.
const (
	BookingPending        = "pending"
	BookingPendingPayment = "pending_payment"
	BookingConfirmed      = "confirmed"
	BookingCancelled      = "cancelled"
)

// Payment statuses.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// Customer holds the contact details captured at booking time.
type Customer struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Booking represents a reserved appointment.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	ServiceID     string    `bson:"service_id" json:"service_id"`
	AgentID       string    `bson:"agent_id" json:"agent_id"`
	LocationID    string    `bson:"location_id,omitempty" json:"location_id,omitempty"`
	Customer      Customer  `bson:"customer" json:"customer"`
	Date          string    `bson:"date" json:"date"`   // "2006-01-02"
	Start         int       `bson:"start" json:"start"` // minutes from midnight
	End           int       `bson:"end" json:"end"`
	Status        string    `bson:"status" json:"status"`
	PaymentStatus string    `bson:"payment_status" json:"payment_status"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// OccupiesTime reports whether the booking blocks its interval for other
// customers.
func (b Booking) OccupiesTime() bool {
	return b.Status != BookingCancelled
}

// Interval returns the booked time range.
func (b Booking) Interval() Interval {
	return Interval{Start: b.Start, End: b.End}
}
