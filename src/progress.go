package storybook

// Progressor receives human-readable progress updates from the
// pipeline. The web server streams them over a websocket; the CLI
// prints them. A nil Progressor is always acceptable.
type Progressor interface {
	UpdateOutput(message string)
}

type nullProgressor struct{}

func (n *nullProgressor) UpdateOutput(message string) {}

func progressOr(p Progressor) Progressor {
	if p != nil {
		return p
	}
	return &nullProgressor{}
}
