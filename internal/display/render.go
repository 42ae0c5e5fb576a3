package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/recipegen/internal/domain"
)

// Toast lifetimes.
const (
	ErrorToastDuration   = 6 * time.Second
	SuccessToastDuration = 3 * time.Second
)

// toast is a transient notification shown above the form.
type toast struct {
	text    string
	urgent  bool
	expires time.Time
}

func (t *toast) expired(now time.Time) bool {
	return t == nil || !now.Before(t.expires)
}

// ── Form ─────────────────────────────────────────────────────────

// RenderForm draws the form fields for the given state. While a request
// is in flight every field is drawn disabled.
func RenderForm(s domain.FormState, width int) string {
	label, value, chip := labelStyle, valueStyle, chipStyle
	if s.Busy() {
		label, value, chip = disabledStyle, disabledStyle, disabledStyle
	}

	var b strings.Builder

	b.WriteString(label.Render("  " + LineIngredientsLabel + " "))
	if len(s.Ingredients) == 0 {
		b.WriteString(hintStyle.Render(LineNoIngredients))
	} else {
		chips := make([]string, len(s.Ingredients))
		for i, ing := range s.Ingredients {
			chips[i] = chip.Render(fmt.Sprintf("[%d] %s", i+1, ing))
		}
		b.WriteString(wrapChips(chips, width-len(LineIngredientsLabel)-3))
	}
	b.WriteByte('\n')

	fields := []string{
		label.Render(LineCuisineLabel+" ") + value.Render(capitalize(s.CuisineType)),
		label.Render(LineLanguageLabel+" ") + value.Render(domain.LanguageLabel(s.Language)),
		label.Render(LineDurationLabel+" ") + value.Render(fmt.Sprintf("%d min", s.Duration)),
	}
	b.WriteString("  " + strings.Join(fields, mutedStyle.Render("  │  ")))

	if s.Status == domain.StatusFailed && s.LastError != "" {
		b.WriteByte('\n')
		b.WriteString(errorTextStyle.Render("  " + s.LastError))
	}
	return b.String()
}

// wrapChips joins chips with two spaces, breaking lines at width.
func wrapChips(chips []string, width int) string {
	if width <= 0 {
		width = 60
	}
	var b strings.Builder
	line := 0
	for i, c := range chips {
		w := lipgloss.Width(c)
		if i > 0 {
			if line+2+w > width {
				b.WriteString("\n    ")
				line = 0
			} else {
				b.WriteString("  ")
				line += 2
			}
		}
		b.WriteString(c)
		line += w
	}
	return b.String()
}

// RenderOverlay draws the blocking loading line. Empty unless a request
// is in flight.
func RenderOverlay(s domain.FormState, spinnerFrame string) string {
	if !s.Busy() {
		return ""
	}
	return "  " + spinnerFrame + " " + overlayStyle.Render(LineGenerating)
}

// RenderToast draws a notification, or nothing once it has expired.
func RenderToast(t *toast, now time.Time) string {
	if t.expired(now) {
		return ""
	}
	if t.urgent {
		return errorToastStyle.Render(" ✗ " + t.text + " ")
	}
	return successToastStyle.Render(" ✓ " + t.text + " ")
}

// ── Result card ──────────────────────────────────────────────────

// NewRecipeRenderer builds the Markdown renderer used for recipe cards.
// style is a glamour standard style name; "auto" or "" picks one from the
// terminal background.
func NewRecipeRenderer(style string, width int) (*glamour.TermRenderer, error) {
	if width <= 0 {
		width = 80
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	return glamour.NewTermRenderer(opts...)
}

// RenderResult draws the recipe card. Empty unless the last submission
// succeeded. A nil renderer yields the raw Markdown.
func RenderResult(s domain.FormState, r *glamour.TermRenderer) string {
	if s.Status != domain.StatusSucceeded || s.Result == nil {
		return ""
	}
	return RenderRecipe(s.Result, r)
}

// RenderRecipe draws a generation response as a recipe card.
func RenderRecipe(resp *domain.GenerateResponse, r *glamour.TermRenderer) string {
	md := RecipeMarkdown(resp)
	body := md
	if r != nil {
		if out, err := r.Render(md); err == nil {
			body = out
		}
	}
	return "  " + DifficultyBadge(resp.Recipe.Difficulty) + "\n" + body
}

// DifficultyBadge renders the difficulty in its colour.
func DifficultyBadge(d domain.Difficulty) string {
	return difficultyStyle(d).Render(" " + difficultyLabel(d) + " ")
}

// RecipeMarkdown formats a generated recipe and its metadata as Markdown.
func RecipeMarkdown(resp *domain.GenerateResponse) string {
	r := resp.Recipe
	md := resp.Metadata

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)

	fmt.Fprintf(&b, "**%s** %s · **%s** %s · **%s** %d min · **%s** %s\n\n",
		LineCuisineLabel, capitalize(r.CuisineType),
		LineLanguageLabel, domain.LanguageLabel(r.Language),
		LineDurationLabel, r.Duration,
		LineDifficultyLabel, difficultyLabel(r.Difficulty))

	if r.RatingsCount > 0 {
		fmt.Fprintf(&b, "**%s** %.1f/5 (%d %s)\n\n", LineRatingLabel, r.Rating, r.RatingsCount, LineRatingsUnit)
	}

	if len(r.Tags) > 0 {
		tags := make([]string, len(r.Tags))
		for i, t := range r.Tags {
			tags[i] = "`" + t + "`"
		}
		b.WriteString(strings.Join(tags, " "))
		b.WriteString("\n\n")
	}

	if md.IsVegetarian {
		b.WriteString(LineVegetarian + "\n\n")
	}

	if r.HasImage() {
		fmt.Fprintf(&b, "![%s](%s)\n\n", r.Title, *r.ImageURL)
	}

	fmt.Fprintf(&b, "## %s\n\n", LineIngredientsHeading)
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "- %s\n", ing)
	}
	b.WriteByte('\n')

	fmt.Fprintf(&b, "## %s\n\n", LineStepsHeading)
	for i, step := range r.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	b.WriteByte('\n')

	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "_%s_\n", LineMetadata(md))
	return b.String()
}

// RenderHistory draws the service's recipe list, newest last.
func RenderHistory(recipes []domain.Recipe) string {
	if len(recipes) == 0 {
		return hintStyle.Render("  " + LineNoHistory)
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render("  " + LineHistoryHeading))
	for _, r := range recipes {
		b.WriteByte('\n')
		line := fmt.Sprintf("  #%d %s", r.ID, r.Title)
		meta := fmt.Sprintf("  %s · %d min · %s", capitalize(r.CuisineType), r.Duration, difficultyLabel(r.Difficulty))
		if !r.CreatedAt.IsZero() {
			meta += " · " + r.CreatedAt.Time.Format("02/01/2006")
		}
		b.WriteString(valueStyle.Render(line) + hintStyle.Render(meta))
	}
	return b.String()
}

// ── Helpers ──────────────────────────────────────────────────────

var (
	difficultyLabels = map[domain.Difficulty]string{
		domain.DifficultyEasy:   "facile",
		domain.DifficultyMedium: "moyen",
		domain.DifficultyHard:   "difficile",
	}
	difficultyColours = map[domain.Difficulty]lipgloss.Color{
		domain.DifficultyEasy:   "#4caf50",
		domain.DifficultyMedium: "#ff9800",
		domain.DifficultyHard:   "#f44336",
	}
)

// difficultyLabel names a grade in French. Unknown grades are shown as
// sent, a missing one as "?".
func difficultyLabel(d domain.Difficulty) string {
	if d.Valid() {
		return difficultyLabels[d]
	}
	if d == "" {
		return "?"
	}
	return string(d)
}

// difficultyStyle colours known grades; anything else is grey.
func difficultyStyle(d domain.Difficulty) lipgloss.Style {
	bg := lipgloss.Color("#757575")
	if d.Valid() {
		bg = difficultyColours[d]
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fafafa")).Background(bg)
}

// capitalize upper-cases the first rune, like the cuisine menu labels.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
