// Package console parses prompt lines into form commands and prints
// notifications to a plain terminal stream.
package console

import (
	"regexp"
	"strings"

	"github.com/hammamikhairi/recipegen/internal/domain"
	"github.com/hammamikhairi/recipegen/internal/logger"
)

// Parser turns a prompt line into a command. Lines starting with "/" are
// commands; anything else is ingredient text, the way Enter in the
// ingredient field commits it.
type Parser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex   *regexp.Regexp
	command domain.CommandType
}

// NewParser creates a command parser.
func NewParser(log *logger.Logger) *Parser {
	p := &Parser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^/(add|a|\+)(\s+(.*))?$`), domain.CommandAddIngredient},
		{regexp.MustCompile(`(?i)^/(rm|remove|del|-)(\s+(.*))?$`), domain.CommandRemoveIngredient},
		{regexp.MustCompile(`(?i)^/(cuisine|c)(\s+(.*))?$`), domain.CommandSetCuisine},
		{regexp.MustCompile(`(?i)^/(lang|language|l)(\s+(.*))?$`), domain.CommandSetLanguage},
		{regexp.MustCompile(`(?i)^/(duration|time|d)(\s+(.*))?$`), domain.CommandSetDuration},
		{regexp.MustCompile(`(?i)^/(generate|gen|go|g)$`), domain.CommandGenerate},
		{regexp.MustCompile(`(?i)^/(reset|clear)$`), domain.CommandReset},
		{regexp.MustCompile(`(?i)^/(list|history|ls)$`), domain.CommandList},
		{regexp.MustCompile(`(?i)^/(help|h|\?)$`), domain.CommandHelp},
		{regexp.MustCompile(`(?i)^/(quit|exit|q)$`), domain.CommandQuit},
	}
	return p
}

// Parse converts a prompt line into a command.
func (p *Parser) Parse(input string) domain.Command {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return domain.Command{Type: domain.CommandUnknown}
	}

	if !strings.HasPrefix(trimmed, "/") {
		return domain.Command{Type: domain.CommandAddIngredient, Payload: trimmed}
	}

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		cmd := domain.Command{Type: rule.command}
		if len(m) > 3 {
			cmd.Payload = strings.TrimSpace(m[3])
		}
		p.log.Debug("parsed %q as %s (payload=%q)", trimmed, cmd.Type, cmd.Payload)
		return cmd
	}

	p.log.Debug("no command matched %q", trimmed)
	return domain.Command{Type: domain.CommandUnknown, Payload: trimmed}
}
