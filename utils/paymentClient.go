package utils

import (
	"encoding/json"
	"fmt"
	"lms/config"
	"log"

	"github.com/go-resty/resty/v2"
)

// CheckoutSession mirrors the payment provider's hosted checkout session
type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"` // unpaid, paid
	AmountTotal   int               `json:"amount_total"`
	Currency      string            `json:"currency"`
	CustomerID    string            `json:"customer"`
	Metadata      map[string]string `json:"metadata"`
}

// CreatePaymentCustomer registers the user at the payment provider and
// returns the provider customer id
func CreatePaymentCustomer(name, email string) (string, error) {
	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.PaymentApiKey).
		SetBody(map[string]string{
			"name":  name,
			"email": email,
		}).
		Post(config.AppConfig.PaymentApiURL + "/customers")
	if err != nil {
		log.Printf("[PAYMENT] Failed to create customer: %v", err)
		return "", err
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		log.Printf("[PAYMENT] Customer creation rejected: %s", resp.String())
		return "", fmt.Errorf("payment provider returned status %d", resp.StatusCode())
	}

	var customer struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body(), &customer); err != nil {
		log.Printf("[PAYMENT] Failed to parse customer response: %v", err)
		return "", err
	}

	return customer.ID, nil
}

// CreateCheckoutSession opens a hosted checkout session for a course
// purchase. The metadata travels opaquely through the provider and comes
// back on verification, which is how the reconciler finds its enrollment.
func CreateCheckoutSession(customerID, planID string, amount int, metadata map[string]string) (*CheckoutSession, error) {
	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.PaymentApiKey).
		SetBody(map[string]interface{}{
			"customer":    customerID,
			"plan":        planID,
			"amount":      amount,
			"success_url": config.AppConfig.CheckoutSuccessURL,
			"cancel_url":  config.AppConfig.CheckoutCancelURL,
			"metadata":    metadata,
		}).
		Post(config.AppConfig.PaymentApiURL + "/checkout/sessions")
	if err != nil {
		log.Printf("[PAYMENT] Failed to create checkout session: %v", err)
		return nil, err
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		log.Printf("[PAYMENT] Checkout session rejected: %s", resp.String())
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode())
	}

	var session CheckoutSession
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		log.Printf("[PAYMENT] Failed to parse checkout session response: %v", err)
		return nil, err
	}

	return &session, nil
}

// GetCheckoutSession fetches a checkout session by id for payment verification
func GetCheckoutSession(sessionID string) (*CheckoutSession, error) {
	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.PaymentApiKey).
		Get(config.AppConfig.PaymentApiURL + "/checkout/sessions/" + sessionID)
	if err != nil {
		log.Printf("[PAYMENT] Failed to fetch checkout session %s: %v", sessionID, err)
		return nil, err
	}
	if resp.StatusCode() != 200 {
		log.Printf("[PAYMENT] Checkout session lookup failed: %s", resp.String())
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode())
	}

	var session CheckoutSession
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		log.Printf("[PAYMENT] Failed to parse checkout session response: %v", err)
		return nil, err
	}

	return &session, nil
}
