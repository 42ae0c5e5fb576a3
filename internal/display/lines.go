package display

// lines.go centralises every string the form shows. The service and the
// default language are French, so is the UI.

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/recipegen/internal/domain"
)

const (
	LineTitle              = "Générateur de Recettes"
	LineIngredientsLabel   = "Ingrédients :"
	LineNoIngredients      = "aucun, tapez un ingrédient puis Entrée"
	LineCuisineLabel       = "Cuisine :"
	LineLanguageLabel      = "Langue :"
	LineDurationLabel      = "Durée :"
	LineDifficultyLabel    = "Difficulté :"
	LineRatingLabel        = "Note :"
	LineRatingsUnit        = "avis"
	LineVegetarian         = "🌱 Végétarien"
	LineIngredientsHeading = "Ingrédients"
	LineStepsHeading       = "Étapes"
	LineGenerating         = "Génération de la recette en cours..."
	LineHistoryHeading     = "Recettes déjà générées :"
	LineNoHistory          = "Aucune recette pour l'instant."
	LineEmptyIngredient    = "Ingrédient vide, rien n'a été ajouté."
	LinePromptHint         = "Entrée ajoute l'ingrédient · /go génère · /help pour l'aide"
)

// LineMetadata summarises the generation statistics.
func LineMetadata(md domain.RequestMetadata) string {
	return fmt.Sprintf("Généré en %.1f s · recherche d'image %.1f s · %d ingrédients · %d étapes",
		md.GenerationTime, md.ImageSearchTime, md.TotalIngredients, md.TotalSteps)
}

// LineBadIndex is shown when /rm gets something that is not a listed number.
func LineBadIndex(payload string) string {
	return fmt.Sprintf("Pas d'ingrédient n°%s.", payload)
}

// LineUnknownCuisine lists the accepted cuisine types.
func LineUnknownCuisine(payload string) string {
	return fmt.Sprintf("Cuisine inconnue : %q. Choix : %s.", payload, strings.Join(domain.Cuisines, ", "))
}

// LineUnknownLanguage lists the accepted language codes.
func LineUnknownLanguage(payload string) string {
	codes := make([]string, len(domain.Languages))
	for i, l := range domain.Languages {
		codes[i] = fmt.Sprintf("%s (%s)", l.Code, l.Label)
	}
	return fmt.Sprintf("Langue inconnue : %q. Choix : %s.", payload, strings.Join(codes, ", "))
}

// LineUnknownCommand is shown for an unrecognised slash command.
func LineUnknownCommand(payload string) string {
	return fmt.Sprintf("Commande inconnue : %s. Tapez /help.", payload)
}

// HelpLines describes the prompt commands.
func HelpLines() []string {
	return []string{
		"<texte>            ajoute un ingrédient",
		"/rm <n>            retire l'ingrédient n",
		"/cuisine <type>    " + strings.Join(domain.Cuisines, ", "),
		"/lang <code>       fr, en, es",
		fmt.Sprintf("/duration <min>    entre %d et %d", domain.MinDuration, domain.MaxDuration),
		"/go                génère la recette",
		"/reset             réinitialise le formulaire",
		"/list              recettes déjà générées",
		"/quit              quitter (ou Ctrl+C)",
		"Échap              ferme la notification",
	}
}
