package domain

import "time"

// WidgetSettings controls the embeddable chat widget for a business.
type WidgetSettings struct {
	BusinessID string
	Enabled    bool
	Theme      string
	Position   string
	UpdatedAt  time.Time
}

// ChatExperience configures the assistant's conversational behavior.
type ChatExperience struct {
	BusinessID string
	Greeting   string
	Tone       string
	Language   string
	UpdatedAt  time.Time
}
