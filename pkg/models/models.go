package models

// Gig lifecycle statuses. A gig only ever moves open -> assigned.
const (
	GigStatusOpen     = "open"
	GigStatusAssigned = "assigned"
)

// Bid lifecycle statuses. A bid leaves pending exactly once.
const (
	BidStatusPending  = "pending"
	BidStatusHired    = "hired"
	BidStatusRejected = "rejected"
)

type User struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name" validate:"required"`
	Email        string `json:"email" db:"email" validate:"required,email"`
	PasswordHash string `json:"password_hash,omitempty" db:"password_hash"`
	Created      int64  `json:"created" db:"created"`
}

type Gig struct {
	ID                int64   `json:"id" db:"id"`
	Title             string  `json:"title" db:"title"`
	Description       string  `json:"description,omitempty" db:"description"`
	Budget            float64 `json:"budget" db:"budget"`
	OwnerID           int64   `json:"owner_id" db:"owner_id"`
	Status            string  `json:"status" db:"status"`
	HiredFreelancerID *int64  `json:"hired_freelancer_id,omitempty" db:"hired_freelancer_id"`
	Created           int64   `json:"created" db:"created"`
}

type Bid struct {
	ID           int64   `json:"id" db:"id"`
	GigID        int64   `json:"gig_id" db:"gig_id"`
	FreelancerID int64   `json:"freelancer_id" db:"freelancer_id"`
	Message      string  `json:"message,omitempty" db:"message"`
	Price        float64 `json:"price" db:"price"`
	Status       string  `json:"status" db:"status"`
	Created      int64   `json:"created" db:"created"`
}
