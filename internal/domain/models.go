package domain

import (
	"time"
)

// BookingRequest is the body of POST /book-room. Every field is optional.
type BookingRequest struct {
	BookingID    string `json:"bookingId"`
	GuestName    string `json:"guestName"`
	RoomType     string `json:"roomType"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	GuestEmail   string `json:"guestEmail"`
	PhoneNumber  string `json:"phoneNumber"`
}

// Booking is the persisted record. Guest contact details are not stored.
type Booking struct {
	BookingID    string `dynamodbav:"BookingID"`
	GuestName    string `dynamodbav:"GuestName"`
	RoomType     string `dynamodbav:"RoomType"`
	CheckInDate  string `dynamodbav:"CheckInDate"`
	CheckOutDate string `dynamodbav:"CheckOutDate"`
}

func (r BookingRequest) Booking() Booking {
	return Booking{
		BookingID:    r.BookingID,
		GuestName:    r.GuestName,
		RoomType:     r.RoomType,
		CheckInDate:  r.CheckInDate,
		CheckOutDate: r.CheckOutDate,
	}
}

type UploadedImage struct {
	Key          string    `json:"key"`
	URL          string    `json:"imageUrl"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
