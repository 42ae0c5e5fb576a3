package domain

// Form defaults, restored on reset.
const (
	DefaultCuisine  = "française"
	DefaultLanguage = "fr"
	DefaultDuration = 30
)

// FormState is the session-scoped record of user input and request
// lifecycle. The controller owns it; everyone else reads snapshots.
type FormState struct {
	Pending     string
	Ingredients []string
	CuisineType string
	Language    string
	Duration    int
	Status      Status
	LastError   string
	Result      *GenerateResponse
}

// NewFormState returns a FormState populated with defaults.
func NewFormState() FormState {
	return FormState{
		Ingredients: []string{},
		CuisineType: DefaultCuisine,
		Language:    DefaultLanguage,
		Duration:    DefaultDuration,
		Status:      StatusIdle,
	}
}

// Clone returns a deep copy. The result pointer is shared since the
// response is never mutated after it is stored.
func (s FormState) Clone() FormState {
	out := s
	out.Ingredients = append([]string{}, s.Ingredients...)
	return out
}

// Request packages the current fields as a RecipeRequest.
func (s FormState) Request() RecipeRequest {
	return RecipeRequest{
		Ingredients: append([]string{}, s.Ingredients...),
		CuisineType: s.CuisineType,
		Language:    s.Language,
		Duration:    s.Duration,
	}
}

// Busy reports whether a generation request is in flight.
func (s FormState) Busy() bool { return s.Status == StatusLoading }

// Status tracks the lifecycle of a generation request.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSucceeded
	StatusFailed
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}
