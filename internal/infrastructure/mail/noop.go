package mail

import (
	"context"
	"fmt"

	appclaims "github.com/claimdesk/backend/internal/application/claims"
)

// NoopChannel is used when mail delivery is disabled. CanSend always
// reports false so submissions fall back to manual delivery.
type NoopChannel struct{}

func NewNoopChannel() *NoopChannel {
	return &NoopChannel{}
}

func (c *NoopChannel) CanSend() bool {
	return false
}

func (c *NoopChannel) Compose(_ context.Context, _, _, _, _ string) error {
	return fmt.Errorf("mail delivery is disabled")
}

var _ appclaims.MailChannel = (*NoopChannel)(nil)
