package configs

// Shopify configures inbound order-webhook verification. WebhookSecret is
// the shared secret the provider signs each delivery with. SkipVerify
// disables signature checking entirely; it exists for local development
// against unsigned test payloads and must never be enabled in production.
type Shopify struct {
	WebhookSecret string `env:"WEBHOOK_SECRET"`
	SkipVerify    bool   `env:"SKIP_VERIFY" envDefault:"false"`
}
