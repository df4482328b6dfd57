package controllers

import (
	"context"
	"errors"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/razorpay/razorpay-go"
	"github.com/stripe/stripe-go/v79"
	stripeclient "github.com/stripe/stripe-go/v79/client"
)

// The external providers are injected into the controllers behind these
// interfaces; main constructs the real clients, tests substitute fakes.

// OrderGateway is the razorpay-style flow: create an order up front, confirm
// it later by fetching its status.
type OrderGateway interface {
	CreateOrder(amount int64, currency, receipt string) (orderID string, err error)
	FetchOrder(orderID string) (status, receipt string, err error)
}

// CheckoutGateway is the stripe-style flow: create a hosted checkout session
// and confirm its payment status afterwards.
type CheckoutGateway interface {
	CreateSession(amount int64, currency, reference, successURL, cancelURL string) (sessionID, url string, err error)
	SessionStatus(sessionID string) (paymentStatus, reference string, err error)
}

// BlobStore persists raw file bytes externally and returns a retrieval URL.
type BlobStore interface {
	UploadImage(ctx context.Context, file io.Reader, publicID string) (string, error)
	UploadRaw(ctx context.Context, file io.Reader, publicID, folder string) (string, error)
}

// Mailer sends a plain-text mail with an optional attachment.
type Mailer interface {
	Send(to, subject, body, attachmentName string, attachment []byte) error
}

// Notifier sends a short text message.
type Notifier interface {
	SendSMS(to, message string) error
}

type razorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(keyID, keySecret string) OrderGateway {
	return &razorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

func (g *razorpayGateway) CreateOrder(amount int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", err
	}
	orderID, ok := body["id"].(string)
	if !ok {
		return "", errors.New("no order id in razorpay response")
	}
	return orderID, nil
}

func (g *razorpayGateway) FetchOrder(orderID string) (string, string, error) {
	body, err := g.client.Order.Fetch(orderID, nil, nil)
	if err != nil {
		return "", "", err
	}
	status, _ := body["status"].(string)
	receipt, _ := body["receipt"].(string)
	return status, receipt, nil
}

type stripeGateway struct {
	client *stripeclient.API
}

func NewStripeGateway(secretKey string) CheckoutGateway {
	api := &stripeclient.API{}
	api.Init(secretKey, nil)
	return &stripeGateway{client: api}
}

func (g *stripeGateway) CreateSession(amount int64, currency, reference, successURL, cancelURL string) (string, string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(successURL),
		CancelURL:         stripe.String(cancelURL),
		ClientReferenceID: stripe.String(reference),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Appointment Fees"),
					},
				},
			},
		},
	}
	session, err := g.client.CheckoutSessions.New(params)
	if err != nil {
		return "", "", err
	}
	return session.ID, session.URL, nil
}

func (g *stripeGateway) SessionStatus(sessionID string) (string, string, error) {
	session, err := g.client.CheckoutSessions.Get(sessionID, nil)
	if err != nil {
		return "", "", err
	}
	return string(session.PaymentStatus), session.ClientReferenceID, nil
}

type cloudinaryStore struct {
	client *cloudinary.Cloudinary
}

func NewCloudinaryStore(client *cloudinary.Cloudinary) BlobStore {
	return &cloudinaryStore{client: client}
}

func (s *cloudinaryStore) UploadImage(ctx context.Context, file io.Reader, publicID string) (string, error) {
	resp, err := s.client.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		ResourceType:   "image",
		Transformation: "c_thumb,w_200,h_200",
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}

func (s *cloudinaryStore) UploadRaw(ctx context.Context, file io.Reader, publicID, folder string) (string, error) {
	resp, err := s.client.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       folder,
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
