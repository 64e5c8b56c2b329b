package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jrsteele09/portfolio-lab/auth"
	"github.com/jrsteele09/portfolio-lab/server"
	"github.com/jrsteele09/portfolio-lab/sessions"
	"github.com/jrsteele09/portfolio-lab/theme"
	"github.com/manifoldco/promptui"
)

// cliNamespace is the server-side namespace the command line client uses
// for its own session and theme.
const cliNamespace = "cli"

type cliClient struct {
	auth  *auth.Service
	theme *theme.Service
	close func() error
}

// openClient rehydrates the command line client's services from the
// configured server-side store. The cookie driver has no server side, so
// it falls back to sqlite.
func openClient(ctx context.Context) (*cliClient, error) {
	backend, closer, err := server.OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	kv := backend.Namespace(cliNamespace)

	accounts, err := auth.NewLocalTable(auth.DemoAccounts()...)
	if err != nil {
		return nil, errors.Join(err, closer())
	}
	checker, err := server.NewChecker(cfg, accounts)
	if err != nil {
		return nil, errors.Join(err, closer())
	}

	store, err := sessions.NewStore(kv)
	if err != nil {
		return nil, errors.Join(err, closer())
	}
	authService, err := auth.NewService(store, checker)
	if err != nil {
		return nil, errors.Join(err, closer())
	}
	themeService, err := theme.NewService(kv, cfg.GetPreferDark)
	if err != nil {
		return nil, errors.Join(err, closer())
	}

	authService.Initialize(ctx)
	themeService.Initialize(ctx)
	return &cliClient{auth: authService, theme: themeService, close: closer}, nil
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

// promptIfEmpty asks for value interactively when the flag was not given.
func promptIfEmpty(value, label string, secret bool) (string, error) {
	if value != "" {
		return value, nil
	}
	p := promptui.Prompt{Label: label, Validate: notBlank}
	if secret {
		p.Mask = '*'
	}
	out, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("%s: %w", strings.ToLower(label), err)
	}
	return out, nil
}
