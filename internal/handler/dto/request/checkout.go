package request

import (
	"course-checkout/internal/usecase/commands"

	"github.com/google/uuid"
)

type CheckoutRequest struct {
	Email      string `json:"email" binding:"required,email,max=254"`
	Password   string `json:"password" binding:"omitempty,min=8,max=72"`
	FirstName  string `json:"firstName" binding:"required,max=100"`
	LastName   string `json:"lastName" binding:"required,max=100"`
	Phone      string `json:"phone" binding:"max=40"`
	Company    string `json:"company" binding:"max=200"`
	Street     string `json:"street" binding:"max=200"`
	PostalCode string `json:"postalCode" binding:"max=20"`
	City       string `json:"city" binding:"max=100"`
	Country    string `json:"country" binding:"omitempty,len=2"`

	OrderType       string    `json:"orderType" binding:"required,oneof=online practical"`
	CourseID        uuid.UUID `json:"courseId" binding:"required_if=OrderType online"`
	OfferingID      uuid.UUID `json:"offeringId" binding:"required_if=OrderType practical"`
	DateID          uuid.UUID `json:"dateId" binding:"required_if=OrderType practical"`
	WithPlasticCard bool      `json:"withPlasticCard"`
}

// ToInput attaches the authenticated caller, if any.
func (r CheckoutRequest) ToInput(authUserID *uuid.UUID) commands.CheckoutInput {
	return commands.CheckoutInput{
		AuthUserID:      authUserID,
		Email:           r.Email,
		Password:        r.Password,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Phone:           r.Phone,
		Company:         r.Company,
		Street:          r.Street,
		PostalCode:      r.PostalCode,
		City:            r.City,
		Country:         r.Country,
		OrderType:       r.OrderType,
		CourseID:        r.CourseID,
		OfferingID:      r.OfferingID,
		DateID:          r.DateID,
		WithPlasticCard: r.WithPlasticCard,
	}
}
