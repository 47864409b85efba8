package storybook

// NewImageClient selects an image backend from the configuration:
// the Stability API when a key is set, then a local SD-WebUI
// instance, then the Horde network. With nothing configured it
// returns a StabilityClient anyway so the missing credential is
// surfaced as a per-image configuration error and the pipeline can
// still produce a text-only document.
func NewImageClient(cfg Config) ImageClient {
	switch {
	case cfg.StabilityKey != "":
		return NewStabilityClient(cfg.StabilityKey)
	case cfg.SDWebUIURL != "":
		return NewLocalClient(cfg.SDWebUIURL)
	case cfg.HordeKey != "":
		return NewHordeClient(cfg.HordeKey)
	default:
		return NewStabilityClient("")
	}
}
