package markdowncmd

// FeatureGates exposes runtime toggles read by the markdown handlers. Callers
// supply closures over configuration so handlers stay decoupled from it.
type FeatureGates struct {
	MarkdownEnabled func() bool
}

func (g FeatureGates) markdownEnabled() bool {
	if g.MarkdownEnabled == nil {
		return true
	}
	return g.MarkdownEnabled()
}
