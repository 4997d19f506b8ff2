// Package subscriptions covers the organization's billing surface: plans,
// the active subscription, usage against limits, and invoices.
package subscriptions

import (
	"time"

	"github.com/roomhub-io/go-booking-client/booking"
)

type BillingCycle string

const (
	BillingMonthly BillingCycle = "MONTHLY"
	BillingYearly  BillingCycle = "YEARLY"
)

type Status string

const (
	StatusTrialing  Status = "TRIALING"
	StatusActive    Status = "ACTIVE"
	StatusPastDue   Status = "PAST_DUE"
	StatusCancelled Status = "CANCELLED"
	StatusExpired   Status = "EXPIRED"
)

type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoiceOpen      InvoiceStatus = "OPEN"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceVoid      InvoiceStatus = "VOID"
	InvoiceUncollect InvoiceStatus = "UNCOLLECTIBLE"
)

// PlanFeatures lists a plan's limits. Limits come back as numbers for capped
// plans and the string "Unlimited" for enterprise, so they stay untyped here.
type PlanFeatures struct {
	PropertiesLimit any      `json:"properties_limit"`
	UsersLimit      any      `json:"users_limit"`
	BookingsLimit   any      `json:"bookings_limit"`
	Features        []string `json:"features"`
}

// Plan is a purchasable subscription tier.
type Plan struct {
	Name          string         `json:"name"`
	DisplayName   string         `json:"display_name"`
	Price         booking.Amount `json:"price"`
	Currency      string         `json:"currency"`
	BillingCycles []BillingCycle `json:"billing_cycles"`
	Features      PlanFeatures   `json:"features"`
	Description   string         `json:"description"`
	Popular       bool           `json:"popular"`
}

// Limits are the caps of the active subscription. Nil means uncapped.
type Limits struct {
	Properties *int `json:"properties"`
	Users      *int `json:"users"`
	Bookings   *int `json:"bookings"`
}

// Subscription is the organization's active subscription.
type Subscription struct {
	ID                 string         `json:"id"`
	PlanName           string         `json:"plan_name"`
	Status             Status         `json:"status"`
	BillingCycle       BillingCycle   `json:"billing_cycle"`
	BasePrice          booking.Amount `json:"base_price"`
	Currency           string         `json:"currency"`
	TrialStart         *time.Time     `json:"trial_start,omitempty"`
	TrialEnd           *time.Time     `json:"trial_end,omitempty"`
	CurrentPeriodStart *time.Time     `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time     `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd  bool           `json:"cancel_at_period_end"`
	CancelledAt        *time.Time     `json:"cancelled_at,omitempty"`
	Limits             Limits         `json:"limits"`
}

// Create starts a subscription for the current organization.
type Create struct {
	PlanName     string
	BillingCycle BillingCycle
	TrialDays    int
}

// Upgrade moves the organization to a different plan. A nil BillingCycle
// keeps the current one.
type Upgrade struct {
	NewPlanName  string
	BillingCycle *BillingCycle
}

// Cancellation ends the subscription, by default at period end.
type Cancellation struct {
	Immediately bool
	Reason      string
}

// CancellationResult is what the backend reports after a cancel.
type CancellationResult struct {
	ID                 string     `json:"id"`
	Status             Status     `json:"status"`
	CancelAtPeriodEnd  bool       `json:"cancel_at_period_end"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
}

// Usage reports consumption against the subscription's limits.
type Usage struct {
	Properties ResourceUsage `json:"properties"`
	Users      ResourceUsage `json:"users"`
	Bookings   ResourceUsage `json:"bookings"`
}

type ResourceUsage struct {
	Used  int  `json:"used"`
	Limit *int `json:"limit"`
}

// InvoiceSummary is one row of the invoice list.
type InvoiceSummary struct {
	ID            string         `json:"id"`
	InvoiceNumber string         `json:"invoice_number"`
	Status        InvoiceStatus  `json:"status"`
	TotalAmount   booking.Amount `json:"total_amount"`
	Currency      string         `json:"currency"`
	IssueDate     *booking.Date  `json:"issue_date,omitempty"`
	DueDate       *booking.Date  `json:"due_date,omitempty"`
	PaidDate      *booking.Date  `json:"paid_date,omitempty"`
	PeriodStart   *booking.Date  `json:"period_start,omitempty"`
	PeriodEnd     *booking.Date  `json:"period_end,omitempty"`
}

// InvoiceList is the paged answer from GET /subscriptions/invoices.
type InvoiceList struct {
	Invoices []InvoiceSummary `json:"invoices"`
	Total    int              `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

type InvoiceLineItem struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	ItemType    string         `json:"item_type"`
	Quantity    int            `json:"quantity"`
	UnitPrice   booking.Amount `json:"unit_price"`
	TotalPrice  booking.Amount `json:"total_price"`
	PeriodStart *booking.Date  `json:"period_start,omitempty"`
	PeriodEnd   *booking.Date  `json:"period_end,omitempty"`
}

// Invoice is the full invoice detail.
type Invoice struct {
	InvoiceSummary
	Subtotal         booking.Amount    `json:"subtotal"`
	TaxAmount        booking.Amount    `json:"tax_amount"`
	DiscountAmount   booking.Amount    `json:"discount_amount"`
	PaymentMethod    string            `json:"payment_method,omitempty"`
	PaymentReference string            `json:"payment_reference,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	LineItems        []InvoiceLineItem `json:"line_items"`
}
