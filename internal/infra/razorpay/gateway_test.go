package razorpay

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/BruksfildServices01/homeservices/internal/domain/payment"
)

type stubOrders struct {
	body  map[string]interface{}
	err   error
	delay time.Duration
	got   map[string]interface{}
}

func (s *stubOrders) Create(data map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	s.got = data
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.body, s.err
}

func request() domain.OrderRequest {
	return domain.OrderRequest{
		Amount:   60000,
		Currency: "INR",
		Receipt:  "booking_1",
		Notes:    map[string]string{"bookingId": "1"},
	}
}

func TestCreateOrder(t *testing.T) {
	stub := &stubOrders{body: map[string]interface{}{"id": "order_abc", "amount": float64(60000), "currency": "INR"}}
	g := &Gateway{orders: stub, keyID: "rzp_test", timeout: time.Second}

	o, err := g.CreateOrder(context.Background(), request())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.ID != "order_abc" || o.Amount != 60000 || o.Currency != "INR" {
		t.Fatalf("unexpected order %+v", o)
	}
	if stub.got["receipt"] != "booking_1" || stub.got["amount"] != int64(60000) {
		t.Fatalf("unexpected request %+v", stub.got)
	}
	if g.KeyID() != "rzp_test" {
		t.Fatalf("unexpected key id")
	}
}

func TestCreateOrder_Errors(t *testing.T) {
	g := &Gateway{orders: &stubOrders{err: errors.New("bad request")}}
	if _, err := g.CreateOrder(context.Background(), request()); err == nil {
		t.Fatalf("expected sdk error")
	}

	g = &Gateway{orders: &stubOrders{body: map[string]interface{}{}}}
	if _, err := g.CreateOrder(context.Background(), request()); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

func TestCreateOrder_Timeout(t *testing.T) {
	g := &Gateway{
		orders:  &stubOrders{delay: 200 * time.Millisecond, body: map[string]interface{}{"id": "late"}},
		timeout: 10 * time.Millisecond,
	}
	_, err := g.CreateOrder(context.Background(), request())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
