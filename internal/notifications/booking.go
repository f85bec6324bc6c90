package notifications

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contact is one party on a booking.
type Contact struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// ServiceLine is one booked service with its price.
type ServiceLine struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// BookingEmailInput is the fixed booking shape the email consumes.
type BookingEmailInput struct {
	UserID        uuid.UUID     `json:"userId"`
	ShopName      string        `json:"shopName"`
	Customer      Contact       `json:"customer"`
	Owner         Contact       `json:"owner"`
	Provider      Contact       `json:"provider"`
	Services      []ServiceLine `json:"services"`
	AppointmentAt time.Time     `json:"appointmentAt"`
}

// Total sums the service line prices.
func (b BookingEmailInput) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range b.Services {
		total = total.Add(line.Price)
	}
	return total
}

func bookingSubject(shopName string) string {
	return fmt.Sprintf("Booking confirmed at %s", shopName)
}

// bookingBody renders the plain-text confirmation email.
func bookingBody(input BookingEmailInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s,\n\n", input.Customer.Name)
	fmt.Fprintf(&b, "Your booking at %s is confirmed.\n\n", input.ShopName)
	fmt.Fprintf(&b, "When: %s\n", input.AppointmentAt.Format("Monday, January 2, 2006 at 3:04 PM"))
	fmt.Fprintf(&b, "Provider: %s\n\n", input.Provider.Name)

	b.WriteString("Services:\n")
	for _, line := range input.Services {
		fmt.Fprintf(&b, "  - %s: $%s\n", line.Name, line.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: $%s\n\n", input.Total().StringFixed(2))

	fmt.Fprintf(&b, "Questions? Contact %s", input.Owner.Name)
	if input.Owner.Phone != nil && *input.Owner.Phone != "" {
		fmt.Fprintf(&b, " at %s", *input.Owner.Phone)
	}
	b.WriteString(".\n\nSee you soon,\nHappy InLine\n")

	return b.String()
}

// bookingShopBody renders the owner/provider copy of the confirmation.
func bookingShopBody(input BookingEmailInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "New booking at %s.\n\n", input.ShopName)
	fmt.Fprintf(&b, "Customer: %s (%s)\n", input.Customer.Name, input.Customer.Email)
	if input.Customer.Phone != nil && *input.Customer.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", *input.Customer.Phone)
	}
	fmt.Fprintf(&b, "Provider: %s\n", input.Provider.Name)
	fmt.Fprintf(&b, "When: %s\n\n", input.AppointmentAt.Format("Monday, January 2, 2006 at 3:04 PM"))

	b.WriteString("Services:\n")
	for _, line := range input.Services {
		fmt.Fprintf(&b, "  - %s: $%s\n", line.Name, line.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: $%s\n", input.Total().StringFixed(2))

	return b.String()
}
