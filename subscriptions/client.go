package subscriptions

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
	"github.com/roomhub-io/go-booking-client/gateway"
)

// Client talks to the /subscriptions endpoints for the caller's current
// organization.
type Client struct {
	gw *gateway.Client
}

func NewClient(gw *gateway.Client) *Client {
	return &Client{gw: gw}
}

// Plans lists the purchasable tiers. Works unauthenticated.
func (c *Client) Plans(ctx context.Context) ([]Plan, error) {
	var response struct {
		Plans []Plan `json:"plans"`
	}
	if err := c.gw.Get(ctx, "/subscriptions/plans", &response); err != nil {
		return nil, errors.Wrap(err, "[subscriptions.Client.Plans]")
	}
	return response.Plans, nil
}

// Current returns the organization's subscription, or nil when it has none.
func (c *Client) Current(ctx context.Context) (*Subscription, error) {
	var response struct {
		Subscription
		Message string `json:"message"`
	}
	if err := c.gw.Get(ctx, "/subscriptions/current", &response); err != nil {
		return nil, errors.Wrap(err, "[subscriptions.Client.Current]")
	}
	if response.ID == "" {
		return nil, nil
	}
	sub := response.Subscription
	return &sub, nil
}

// Subscribe starts a subscription. The backend takes these as query
// parameters, not a body.
func (c *Client) Subscribe(ctx context.Context, create Create) (*Subscription, error) {
	if create.PlanName == "" {
		return nil, errors.New("[subscriptions.Client.Subscribe] plan name required")
	}
	query := url.Values{"plan_name": {create.PlanName}}
	if create.BillingCycle != "" {
		query.Set("billing_cycle", string(create.BillingCycle))
	}
	if create.TrialDays > 0 {
		query.Set("trial_days", strconv.Itoa(create.TrialDays))
	}

	var sub Subscription
	if err := c.gw.Post(ctx, "/subscriptions?"+query.Encode(), nil, &sub); err != nil {
		return nil, errors.Wrap(err, "[subscriptions.Client.Subscribe]")
	}
	return &sub, nil
}

// Usage reports consumption against the subscription's limits.
func (c *Client) Usage(ctx context.Context) (*Usage, error) {
	var usage Usage
	if err := c.gw.Get(ctx, "/subscriptions/usage", &usage); err != nil {
		return nil, errors.Wrap(err, "[subscriptions.Client.Usage]")
	}
	return &usage, nil
}

// ChangePlan upgrades or downgrades the subscription.
func (c *Client) ChangePlan(ctx context.Context, upgrade Upgrade) (*Subscription, error) {
	if upgrade.NewPlanName == "" {
		return nil, errors.New("[subscriptions.Client.ChangePlan] plan name required")
	}
	query := url.Values{"new_plan_name": {upgrade.NewPlanName}}
	if upgrade.BillingCycle != nil {
		query.Set("billing_cycle", string(*upgrade.BillingCycle))
	}

	var sub Subscription
	if err := c.gw.Patch(ctx, "/subscriptions/upgrade?"+query.Encode(), nil, &sub); err != nil {
		return nil, errors.Wrap(err, "[subscriptions.Client.ChangePlan]")
	}
	return &sub, nil
}

// Cancel ends the subscription, at period end unless Immediately is set.
func (c *Client) Cancel(ctx context.Context, cancellation Cancellation) (*CancellationResult, error) {
	query := url.Values{}
	query.Set("cancel_at_period_end", strconv.FormatBool(!cancellation.Immediately))
	if cancellation.Reason != "" {
		query.Set("reason", cancellation.Reason)
	}

	var result CancellationResult
	if err := c.gw.Post(ctx, "/subscriptions/cancel?"+query.Encode(), nil, &result); err != nil {
		return nil, errors.Wrap(err, "[subscriptions.Client.Cancel]")
	}
	return &result, nil
}

// Invoices lists the organization's invoices, newest first.
func (c *Client) Invoices(ctx context.Context, limit, offset int) (*InvoiceList, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
	path := "/subscriptions/invoices"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var list InvoiceList
	if err := c.gw.Get(ctx, path, &list); err != nil {
		return nil, errors.Wrap(err, "[subscriptions.Client.Invoices]")
	}
	return &list, nil
}

// Invoice returns one invoice with line items.
func (c *Client) Invoice(ctx context.Context, invoiceID string) (*Invoice, error) {
	var invoice Invoice
	if err := c.gw.Get(ctx, "/subscriptions/invoices/"+invoiceID, &invoice); err != nil {
		return nil, errors.Wrap(err, "[subscriptions.Client.Invoice]")
	}
	return &invoice, nil
}
