package llm

import "context"

// Purpose labels recorded with every request event.
const (
	PurposeProblemGen  = "problem-gen"
	PurposeExplanation = "explanation"
	PurposeSpeech      = "speech"
	PurposeUnlabeled   = "unlabeled"
)

type purposeKey struct{}

// WithPurpose tags ctx so the logging decorators can attribute requests.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose set by WithPurpose, or PurposeUnlabeled.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnlabeled
}

// vendor is implemented by concrete providers and forwarded by decorators.
type vendor interface {
	Vendor() string
}

// vendorOf names the backend behind p for the event log.
func vendorOf(p any) string {
	if v, ok := p.(vendor); ok {
		return v.Vendor()
	}
	return "unknown"
}
