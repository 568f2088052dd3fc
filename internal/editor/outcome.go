package editor

// Outcome reports whether a mutation was applied. Rejections carry an
// advisory reason meant for user-facing warnings, never for error handling:
// every rejected operation leaves the stores exactly as they were.
type Outcome struct {
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`
}

func applied() Outcome {
	return Outcome{Applied: true}
}

func rejected(reason string) Outcome {
	return Outcome{Reason: reason}
}
