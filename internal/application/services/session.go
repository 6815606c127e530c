package services

import (
	"context"

	"braindrive.ai/plugindev/internal/core/domain"
	"braindrive.ai/plugindev/internal/core/ports"
)

// authenticate obtains the single token used by one install or uninstall run
func authenticate(ctx context.Context, auth ports.Authenticator, reporter ports.ProgressReporter) (domain.AuthToken, error) {
	reporter.Step("Logging in as %s", auth.Account())

	token, err := auth.Login(ctx)
	if err != nil {
		reporter.Failure("Login failed", err)
		return domain.AuthToken{}, err
	}

	return token, nil
}
