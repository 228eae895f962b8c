package model

// DeliveryKind classifies how a release ended up being delivered to the chat
type DeliveryKind string

const (
	// DeliveryDelivered means the asset file itself was uploaded
	DeliveryDelivered DeliveryKind = "delivered"
	// DeliveryFallbackLink means only a download link was sent
	DeliveryFallbackLink DeliveryKind = "fallback_link"
	// DeliverySkipped means no matching asset was found
	DeliverySkipped DeliveryKind = "skipped"
)

// DeliveryOutcome records the terminal state of one relay invocation
type DeliveryOutcome struct {
	Kind   DeliveryKind
	Reason string
}

// Delivered returns an outcome for a successful asset upload
func Delivered() *DeliveryOutcome {
	return &DeliveryOutcome{Kind: DeliveryDelivered}
}

// FallbackLink returns an outcome for a link-only delivery
func FallbackLink(reason string) *DeliveryOutcome {
	return &DeliveryOutcome{Kind: DeliveryFallbackLink, Reason: reason}
}

// Skipped returns an outcome for a delivery with no asset involved
func Skipped(reason string) *DeliveryOutcome {
	return &DeliveryOutcome{Kind: DeliverySkipped, Reason: reason}
}
