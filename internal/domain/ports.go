package domain

import "context"

// RecipeService generates and lists recipes. The HTTP client in package
// api is the production implementation; tests use fakes.
type RecipeService interface {
	GenerateRecipe(ctx context.Context, req RecipeRequest) (*GenerateResponse, error)
	ListRecipes(ctx context.Context) ([]Recipe, error)
}

// Notifier delivers one-shot messages to the user. Implementations can
// write to a terminal stream or raise a toast in the TUI.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
