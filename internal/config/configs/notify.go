package configs

import "time"

// Notify configures the best-effort notification callback. An empty URL
// disables notifications. Timeout bounds each outbound request.
type Notify struct {
	URL     string        `env:"URL"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
}
