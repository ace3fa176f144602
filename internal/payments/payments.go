// Package payments is the boundary to the external payment processor. Only
// refunds are invoked from the core, on order cancellation; capture happens
// elsewhere. Refund failures are reported to the caller, which logs them and
// moves on; the cancellation itself is never rolled back.
package payments

import (
	"context"
	"fmt"
	"log"
	"time"
)

type Refunder interface {
	Refund(ctx context.Context, paymentIntentID string) error
	Close() error
}

// ConsoleRefunder stands in for the processor in local/dev environments.
type ConsoleRefunder struct{}

func NewConsoleRefunder() Refunder {
	log.Println("Initialized Console Payment Refunder (Placeholder)")
	return &ConsoleRefunder{}
}

func (r *ConsoleRefunder) Refund(ctx context.Context, paymentIntentID string) error {
	select {
	case <-time.After(50 * time.Millisecond):
		fmt.Printf("\n--- PAYMENT_REFUND (CONSOLE) ---\n")
		fmt.Printf("PaymentIntent: %s\n", paymentIntentID)
		fmt.Printf("--- END REFUND ---\n")
		return nil
	case <-ctx.Done():
		log.Printf("PAYMENT_REFUND (CANCELLED): PaymentIntent=[%s]", paymentIntentID)
		return ctx.Err()
	}
}

func (r *ConsoleRefunder) Close() error {
	log.Println("Closing Console Payment Refunder")
	return nil
}
