package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// prices are plain JSON numbers on the wire
	decimal.MarshalJSONWithoutQuotes = true
}

type BookingType string

const (
	BookingFlight BookingType = "flight"
	BookingHotel  BookingType = "hotel"
	BookingTrain  BookingType = "train"
	BookingCar    BookingType = "car"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DateOfBirth  time.Time `json:"dob"`
	IsStudent    bool      `json:"isStudent"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Booking.Price is the amount actually charged, after Discount was taken off
// the requested price.
type Booking struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"userId"`
	Type       BookingType     `json:"type"`
	ItemName   string          `json:"itemName"`
	Price      decimal.Decimal `json:"price"`
	Discount   decimal.Decimal `json:"discount"`
	Details    json.RawMessage `json:"details,omitempty"`
	TravelDate *time.Time      `json:"travelDate,omitempty"`
	Status     BookingStatus   `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type Review struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	BookingID uuid.UUID `json:"bookingId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Favorite struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	ItemType    BookingType     `json:"itemType"`
	ItemName    string          `json:"itemName"`
	ItemDetails json.RawMessage `json:"itemDetails,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// PromoCode is global state shared by all users. CurrentUses only moves
// through the atomic redemption path, never through plain updates.
type PromoCode struct {
	ID               uuid.UUID       `json:"id"`
	Code             string          `json:"code"`
	Kind             DiscountKind    `json:"kind"`
	Value            decimal.Decimal `json:"value"`
	MinBookingAmount decimal.Decimal `json:"minBookingAmount"`
	MaxUses          *int            `json:"maxUses,omitempty"`
	CurrentUses      int             `json:"currentUses"`
	ValidFrom        time.Time       `json:"validFrom"`
	ValidUntil       time.Time       `json:"validUntil"`
	Active           bool            `json:"active"`
}

// Session is the identity attached to a request once the cookie token has
// been resolved against the session store.
type Session struct {
	Token     string    `json:"-"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsStudent bool      `json:"isStudent"`
	IsAdmin   bool      `json:"isAdmin"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	DOB      string `json:"dob" validate:"required,adult"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type BookingRequest struct {
	Type       BookingType     `json:"type" validate:"required,oneof=flight hotel train car"`
	ItemName   string          `json:"itemName" validate:"required,max=200"`
	Price      decimal.Decimal `json:"price" validate:"required,gt=0"`
	Details    json.RawMessage `json:"details,omitempty"`
	TravelDate string          `json:"travelDate,omitempty" validate:"omitempty,dateonly"`
	PromoCode  string          `json:"promoCode,omitempty" validate:"omitempty,max=64"`
}

type QuoteRequest struct {
	Price     decimal.Decimal `json:"price" validate:"required,gt=0"`
	PromoCode string          `json:"promoCode,omitempty" validate:"omitempty,max=64"`
}

type ReviewRequest struct {
	BookingID uuid.UUID `json:"bookingId" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment,omitempty" validate:"max=2000"`
}

type FavoriteRequest struct {
	ItemType    BookingType     `json:"itemType" validate:"required,oneof=flight hotel train car"`
	ItemName    string          `json:"itemName" validate:"required,max=200"`
	ItemDetails json.RawMessage `json:"itemDetails,omitempty"`
}

type PromoCodeRequest struct {
	Code             string          `json:"code" validate:"required,max=64"`
	Kind             DiscountKind    `json:"kind" validate:"required,oneof=percentage fixed"`
	Value            decimal.Decimal `json:"value" validate:"required,gt=0"`
	MinBookingAmount decimal.Decimal `json:"minBookingAmount" validate:"gte=0"`
	MaxUses          *int            `json:"maxUses,omitempty" validate:"omitempty,gt=0"`
	ValidFrom        string          `json:"validFrom" validate:"required,dateonly"`
	ValidUntil       string          `json:"validUntil" validate:"required,dateonly"`
	Active           bool            `json:"active"`
}

// UserRolesRequest carries admin role-flag updates; nil fields are left alone.
type UserRolesRequest struct {
	IsStudent *bool `json:"isStudent,omitempty"`
	IsAdmin   *bool `json:"isAdmin,omitempty"`
}

type SessionUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsStudent bool      `json:"isStudent"`
	IsAdmin   bool      `json:"isAdmin"`
}

type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type LoginResponse struct {
	Success bool        `json:"success"`
	User    SessionUser `json:"user"`
}

type SessionResponse struct {
	LoggedIn bool         `json:"loggedIn"`
	User     *SessionUser `json:"user,omitempty"`
}

type CreateBookingResponse struct {
	Success   bool      `json:"success"`
	BookingID uuid.UUID `json:"bookingId"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type QuoteResponse struct {
	FinalPrice decimal.Decimal `json:"finalPrice"`
	Discount   decimal.Decimal `json:"discount"`
}

type AdminStats struct {
	TotalUsers     int64           `json:"totalUsers"`
	TotalBookings  int64           `json:"totalBookings"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	RecentBookings []Booking       `json:"recentBookings"`
}

// SessionUserFrom projects the public view of a user for session payloads.
func SessionUserFrom(u *User) SessionUser {
	return SessionUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsStudent: u.IsStudent,
		IsAdmin:   u.IsAdmin,
	}
}
