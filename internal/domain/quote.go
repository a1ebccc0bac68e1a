package domain

// Quote is a motivational quote fetched from the external provider,
// or the local fallback when the provider is unavailable.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// FallbackQuote returns the fixed local quote served whenever the
// external provider fails. Callers see the same shape either way; the
// difference is only observable in logs and metrics.
func FallbackQuote() Quote {
	return Quote{
		Text:   "Cree en ti misma y en todo lo que eres.",
		Author: "NutriSnackTech",
	}
}
