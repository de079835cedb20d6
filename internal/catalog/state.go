package catalog

// Phase enumerates the catalog load states the view layer consumes.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseEmpty   Phase = "empty"
	PhaseLoaded  Phase = "loaded"
)

// State is the explicit tagged union for a catalog fetch: exactly one of
// Loading, Error (with message), Empty, or Loaded (with products).
type State struct {
	Phase    Phase     `json:"phase"`
	Message  string    `json:"message,omitempty"`
	Products []Product `json:"products,omitempty"`
}

func Loading() State {
	return State{Phase: PhaseLoading}
}

func Errored(message string) State {
	return State{Phase: PhaseError, Message: message}
}

func Empty() State {
	return State{Phase: PhaseEmpty, Products: []Product{}}
}

func Loaded(products []Product) State {
	if len(products) == 0 {
		return Empty()
	}
	return State{Phase: PhaseLoaded, Products: products}
}
