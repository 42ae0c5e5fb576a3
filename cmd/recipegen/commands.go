package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/recipegen/internal/console"
	"github.com/hammamikhairi/recipegen/internal/display"
	"github.com/hammamikhairi/recipegen/internal/domain"
	"github.com/hammamikhairi/recipegen/internal/form"
)

type generateFlags struct {
	ingredients []string
	cuisine     string
	language    string
	duration    int
	json        bool
}

func newGenerateCmd(root *rootFlags) *cobra.Command {
	g := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one recipe without the interactive form",
		Long: `Submits one generation request and prints the recipe card, or the raw
service response with --json. Notifications go to stderr.

Example:
  recipegen generate -i "2 eggs" -i flour -i milk --cuisine française --duration 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, root, g)
		},
	}

	fl := cmd.Flags()
	fl.StringArrayVarP(&g.ingredients, "ingredient", "i", nil, "ingredient to use (repeatable)")
	fl.StringVarP(&g.cuisine, "cuisine", "c", domain.DefaultCuisine, "cuisine type: "+strings.Join(domain.Cuisines, ", "))
	fl.StringVarP(&g.language, "lang", "l", domain.DefaultLanguage, "recipe language: fr, en, es")
	fl.IntVarP(&g.duration, "duration", "d", domain.DefaultDuration,
		fmt.Sprintf("target duration in minutes (%d-%d)", domain.MinDuration, domain.MaxDuration))
	fl.BoolVar(&g.json, "json", false, "print the raw service response as JSON")
	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootFlags, g *generateFlags) error {
	rt, err := setup(cmd, root)
	if err != nil {
		return err
	}
	defer rt.Close()

	stderr := cmd.ErrOrStderr()
	notifier := console.NewCLINotifier(rt.log, func(format string, a ...interface{}) {
		fmt.Fprintf(stderr, format, a...)
	}, isTerminal(stderr))
	ctrl := form.New(rt.client, rt.log, form.WithNotifier(notifier))

	for _, ing := range g.ingredients {
		ctrl.SetPending(ing)
		ctrl.AddIngredient()
	}
	if err := ctrl.SetCuisine(strings.ToLower(g.cuisine)); err != nil {
		return fmt.Errorf("%w: %q", err, g.cuisine)
	}
	if err := ctrl.SetLanguage(strings.ToLower(g.language)); err != nil {
		return fmt.Errorf("%w: %q", err, g.language)
	}
	if !ctrl.SetDuration(g.duration) {
		return fmt.Errorf("duration must be between %d and %d minutes, got %d",
			domain.MinDuration, domain.MaxDuration, g.duration)
	}

	resp, err := ctrl.Submit(cmd.Context())
	if err != nil {
		return reportedError{err}
	}

	out := cmd.OutOrStdout()
	if g.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	style := rt.cfg.MarkdownStyle
	if !isTerminal(out) {
		style = "notty"
	}
	r, err := display.NewRecipeRenderer(style, 80)
	if err != nil {
		rt.log.Warn("markdown renderer unavailable, printing raw markdown: %v", err)
		r = nil
	}
	fmt.Fprintln(out, display.RenderRecipe(resp, r))
	return nil
}

func newListCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"history"},
		Short:   "List the recipes the service has generated",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, root)
			if err != nil {
				return err
			}
			defer rt.Close()

			recipes, err := rt.client.ListRecipes(cmd.Context())
			if err != nil {
				rt.log.Error("listing recipes: %v", err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), display.RenderHistory(recipes))
			return nil
		},
	}
}

func newConfigCmd(root *rootFlags) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after the config file, RECIPEGEN_* variables
and flags are applied. With --save it is written to the --config path, so
flag values become the new defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, root)
			if err != nil {
				return err
			}
			defer rt.Close()

			if save {
				if err := rt.cfg.Save(root.configPath); err != nil {
					return err
				}
				rt.log.Info("config written to %s", root.configPath)
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", root.configPath)
				return nil
			}

			data, err := rt.cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the configuration to the --config file")
	return cmd
}
