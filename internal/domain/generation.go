package domain

// EngineTier identifies which step of the generation fallback chain produced
// a hero image.
type EngineTier string

const (
	EnginePrimary     EngineTier = "primary"
	EngineSecondary   EngineTier = "secondary"
	EnginePlaceholder EngineTier = "placeholder"
)

// GenerationAttempt records the outcome of one gateway call. It is ephemeral:
// used for logging and tests, never persisted.
type GenerationAttempt struct {
	Tier   EngineTier
	Engine string
}
