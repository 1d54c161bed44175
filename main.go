package main

import (
	"errors"
	"os"

	"github.com/muin-company/oops/cmd"
	"github.com/muin-company/oops/internal/sentry"
)

func main() {
	os.Exit(run())
}

func run() int {
	cleanup := sentry.Init(cmd.Version)
	defer cleanup()
	defer sentry.RecoverAndPanic()

	if err := cmd.Execute(); err != nil {
		var svcErr *cmd.ServiceError
		if errors.As(err, &svcErr) {
			sentry.CaptureServiceError(svcErr.Err, svcErr.Provider, svcErr.Model)
		}
		return 1
	}
	return 0
}
