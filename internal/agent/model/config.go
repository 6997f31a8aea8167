package model

import "time"

// ================ Config ================
type ClassifierModelConfig struct {
	Model       string        `envconfig:"CLASSIFIER_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int           `envconfig:"CLASSIFIER_MAX_TOKENS" default:"256"`
	Temperature float32       `envconfig:"CLASSIFIER_TEMPERATURE" default:"0"`
	Timeout     time.Duration `envconfig:"CLASSIFIER_TIMEOUT" default:"15s"`
	// ContextMaxTokens caps the few-shot catalog context; 0 disables trimming.
	ContextMaxTokens int `envconfig:"CLASSIFIER_CONTEXT_MAX_TOKENS" default:"6000"`
}

type WorkflowConfig struct {
	DegradeOnClassifierError bool `envconfig:"WORKFLOW_DEGRADE_ON_CLASSIFIER_ERROR" default:"true"`
	MaxRunSteps              int  `envconfig:"WORKFLOW_MAX_RUN_STEPS" default:"20"`
}

type CatalogConfig struct {
	Path string `envconfig:"CATALOG_PATH" default:"support_dataset.json"`
}

type SessionConfig struct {
	Store string        `envconfig:"SESSION_STORE" default:"memory"`
	TTL   time.Duration `envconfig:"SESSION_TTL" default:"30m"`
}

type EscalationConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_ESCALATION_TOPIC" default:"support-escalations"`
}

type ServerConfig struct {
	Addr           string        `envconfig:"HTTP_ADDR" default:":8080"`
	RequestTimeout time.Duration `envconfig:"HTTP_REQUEST_TIMEOUT" default:"60s"`
	TracingEnabled bool          `envconfig:"TRACING_ENABLED" default:"false"`
}
