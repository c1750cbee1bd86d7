// model/request.go
package model

import "time"

type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ItemRequestView carries the items listed in answer to the request.
type ItemRequestView struct {
	ItemRequest
	Items []Item `json:"items"`
}

type CreateRequestReq struct {
	Description string `json:"description" validate:"required"`
}
