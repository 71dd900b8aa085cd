package notify

import (
	"context"
	"fmt"

	"github.com/Domenick1991/priceops/internal/kafka"
)

// Sender hands quote events to the platform notification channels. The real
// email/SMS/push services live outside this repo; this sender stands in for
// them.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.QuoteEvent) error {
	fmt.Printf("notify channels: %s quote %s for %s priced %.2f -> %.2f\n",
		event.Type, event.QuoteID, event.Destination, event.OriginalPrice, event.FinalPrice)
	return nil
}
