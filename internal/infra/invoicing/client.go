package invoicing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"course-checkout/internal/pkg/config"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"
)

var ErrInvoicingAPI = errs.New("invoicing api request failed")

// Client talks to the external invoicing API over plain JSON.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg config.InvoicingConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type createInvoiceRequest struct {
	ExternalReference string        `json:"external_reference"`
	Currency          string        `json:"currency"`
	IssueDate         string        `json:"issue_date"`
	Recipient         recipient     `json:"recipient"`
	Lines             []invoiceLine `json:"lines"`
}

type recipient struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Company    string `json:"company,omitempty"`
	Street     string `json:"street,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
}

type invoiceLine struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	NetCents    int64  `json:"net_amount_cents"`
	GrossCents  int64  `json:"gross_amount_cents"`
	VATRate     string `json:"vat_rate"`
}

type createInvoiceResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	PDFURL string `json:"pdf_url"`
}

func (c *Client) CreateInvoice(ctx context.Context, req shared.InvoiceRequest) (*shared.IssuedInvoice, error) {
	body := createInvoiceRequest{
		ExternalReference: req.OrderNumber,
		Currency:          strings.ToUpper(req.Currency),
		IssueDate:         req.PaidAt.UTC().Format(time.DateOnly),
		Recipient: recipient{
			Name:       req.Buyer.FullName(),
			Email:      req.Buyer.Email,
			Company:    req.Buyer.Company,
			Street:     req.Buyer.Street,
			PostalCode: req.Buyer.PostalCode,
			City:       req.Buyer.City,
			Country:    req.Buyer.Country,
		},
	}
	for _, l := range req.Lines {
		body.Lines = append(body.Lines, invoiceLine(l))
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errs.Wrap(err, "encode invoice request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/invoices", bytes.NewReader(payload))
	if err != nil {
		return nil, errs.Wrap(err, "build invoice request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Idempotency-Key", req.OrderNumber)

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "send invoice request"), ErrInvoicingAPI)
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, errs.Mark(fmt.Errorf("invoicing api returned %d: %s", res.StatusCode, string(raw)), ErrInvoicingAPI)
	}

	var out createInvoiceResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode invoice response"), ErrInvoicingAPI)
	}
	if out.ID == "" {
		return nil, errs.Mark(errs.New("invoicing api returned no invoice id"), ErrInvoicingAPI)
	}

	return &shared.IssuedInvoice{ID: out.ID, Number: out.Number, PDFURL: out.PDFURL}, nil
}
