// model/item.go
package model

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"-"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// ItemDetail is the owner-aware read shape: booking summaries are only
// populated when the requester owns the item.
type ItemDetail struct {
	Item
	LastBooking *BookingSummary `json:"lastBooking,omitempty"`
	NextBooking *BookingSummary `json:"nextBooking,omitempty"`
	Comments    []Comment       `json:"comments"`
}

type CreateItemReq struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// UpdateItemReq is a partial patch: nil fields are left untouched.
type UpdateItemReq struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}
