// Package razorpay adapts the Razorpay SDK to the payment gateway port.
package razorpay

import (
	"context"
	"errors"
	"fmt"
	"time"

	rzp "github.com/razorpay/razorpay-go"

	domain "github.com/BruksfildServices01/homeservices/internal/domain/payment"
)

// orderCreator is the slice of the SDK client that is used.
type orderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type Gateway struct {
	orders  orderCreator
	keyID   string
	timeout time.Duration
}

func New(keyID, keySecret string, timeout time.Duration) *Gateway {
	client := rzp.NewClient(keyID, keySecret)
	return &Gateway{
		orders:  client.Order,
		keyID:   keyID,
		timeout: timeout,
	}
}

func (g *Gateway) KeyID() string {
	return g.keyID
}

type result struct {
	body map[string]interface{}
	err  error
}

// CreateOrder calls the orders API. The SDK has no context support, so the
// call runs in its own goroutine and is abandoned once ctx or the gateway
// timeout expires.
func (g *Gateway) CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	notes := make(map[string]interface{}, len(req.Notes))
	for k, v := range req.Notes {
		notes[k] = v
	}
	data := map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes":    notes,
	}

	done := make(chan result, 1)
	go func() {
		body, err := g.orders.Create(data, nil)
		done <- result{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("razorpay: create order: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("razorpay: create order: %w", res.err)
		}
		return parseOrder(res.body, req)
	}
}

func parseOrder(body map[string]interface{}, req domain.OrderRequest) (*domain.Order, error) {
	id, _ := body["id"].(string)
	if id == "" {
		return nil, errors.New("razorpay: order response without id")
	}

	out := &domain.Order{
		ID:       id,
		Amount:   req.Amount,
		Currency: req.Currency,
	}
	switch v := body["amount"].(type) {
	case float64:
		out.Amount = int64(v)
	case int64:
		out.Amount = v
	case int:
		out.Amount = int64(v)
	}
	if c, ok := body["currency"].(string); ok && c != "" {
		out.Currency = c
	}
	return out, nil
}

var _ domain.Gateway = (*Gateway)(nil)
