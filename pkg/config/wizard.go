package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when the wizard is started without a terminal.
var ErrNotTerminal = errors.New("config wizard needs an interactive terminal")

// isTerminal checks if stdin is connected to a terminal
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with the wizard theme
func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
}

// wizardAnswers holds the raw form values before they are parsed into a Config.
type wizardAnswers struct {
	paths              string
	columns            string
	pageSize           string
	autoClose          bool
	backspaceClearsAll bool
	showHelpFooter     bool
}

func answersFrom(cfg Config) wizardAnswers {
	return wizardAnswers{
		paths:              strings.Join(cfg.Sources.Paths, ", "),
		columns:            strings.Join(cfg.Sources.Columns, ", "),
		pageSize:           strconv.Itoa(cfg.Interaction.PageSize),
		autoClose:          boolOr(cfg.Interaction.AutoClose, true),
		backspaceClearsAll: cfg.Interaction.BackspaceClearsAll,
		showHelpFooter:     cfg.HelpFooter(),
	}
}

// apply parses the answers into a copy of cfg.
func (a wizardAnswers) apply(cfg Config) (Config, error) {
	n, err := strconv.Atoi(strings.TrimSpace(a.pageSize))
	if err != nil {
		return cfg, fmt.Errorf("page size: %w", err)
	}
	cfg.Interaction.PageSize = n
	cfg.Interaction.AutoClose = &a.autoClose
	cfg.Interaction.BackspaceClearsAll = a.backspaceClearsAll
	cfg.UI.ShowHelpFooter = &a.showHelpFooter
	cfg.Sources.Paths = splitList(a.paths)
	cfg.Sources.Columns = splitList(a.columns)
	cfg.Normalize()
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, expandHome(part))
		}
	}
	return out
}

func validatePageSize(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 100 {
		return errors.New("enter a number between 1 and 100")
	}
	return nil
}

// RunWizard asks for the common settings, starting from cfg, and returns the
// updated configuration. Nothing is written; callers decide where to save.
func RunWizard(cfg Config) (Config, error) {
	if !isTerminal() {
		return cfg, ErrNotTerminal
	}

	a := answersFrom(cfg)
	form := newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Catalog files").
				Description("Comma-separated files or directories (.json, .yaml, .db)").
				Value(&a.paths),
			huh.NewInput().
				Title("Column titles (optional)").
				Description("Value column first, e.g. City, Country, Continent").
				Value(&a.columns),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Page size").
				Validate(validatePageSize).
				Value(&a.pageSize),
			huh.NewConfirm().
				Title("Close the list after choosing a value?").
				Value(&a.autoClose),
			huh.NewConfirm().
				Title("Should Backspace clear every column?").
				Description("No clears only the active column").
				Value(&a.backspaceClearsAll),
			huh.NewConfirm().
				Title("Show key hints?").
				Value(&a.showHelpFooter),
		),
	)

	if err := form.Run(); err != nil {
		return cfg, err
	}
	return a.apply(cfg)
}
