package types

import "time"

// HTTPConfig holds shared HTTP settings for calls to the admin API.
type HTTPConfig struct {
	// Timeout is the per-request timeout. The reconciliation layer has no
	// timeout of its own, so this is the only bound on a hung partition.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with every request
	// (e.g. "hireboard/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// APIConfig locates and authenticates against the admin REST API.
type APIConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the API root, e.g. "https://api.example.com/v1".
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Token is the bearer token for admin endpoints.
	Token string `json:"token,omitempty" yaml:"token,omitempty" mapstructure:"token"`

	// MaxRetries bounds retries on HTTP 429/503 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// ReviewConfig configures the job review screen.
type ReviewConfig struct {
	// Statuses are the partitions fetched on each refresh, in merge order.
	Statuses []string `json:"statuses" yaml:"statuses" mapstructure:"statuses"`
}

// AuditConfig configures the moderation decision journal.
type AuditConfig struct {
	// Dir holds the journal database (audit.db).
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Actor is recorded as the reviewer on every decision.
	Actor string `json:"actor" yaml:"actor" mapstructure:"actor"`
}

// ConsoleConfig groups all console settings.
type ConsoleConfig struct {
	API    APIConfig    `json:"api" yaml:"api" mapstructure:"api"`
	Review ReviewConfig `json:"review" yaml:"review" mapstructure:"review"`
	Audit  AuditConfig  `json:"audit" yaml:"audit" mapstructure:"audit"`
}

// DefaultStatuses is the partition order used when none is configured.
var DefaultStatuses = []string{StatusPending, StatusApproved, StatusRejected}
