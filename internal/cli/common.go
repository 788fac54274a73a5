package cli

import (
	"fmt"
	"os"
	"strconv"

	"trip-planner/internal/config"
	"trip-planner/internal/modules/editor"
	"trip-planner/internal/remote"
	"trip-planner/internal/state"

	"github.com/labstack/gommon/log"
)

// newService builds an editor service over a fresh store from the
// configuration found in configDir. Logs go to stderr so they never mix
// with command output.
func newService() (*editor.Service, *config.Config, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, err
	}

	logger := func(prefix string) *log.Logger {
		l := log.New(prefix)
		l.SetOutput(os.Stderr)
		l.SetLevel(cfg.Level())
		return l
	}

	client := remote.NewClient(cfg.RemoteBaseURL, cfg.RemoteToken, remote.WithLogger(logger("remote")))
	store := state.NewStore()
	store.SetLogger(logger("state"))

	svc := editor.NewService(client, store)
	svc.SetLogger(logger("editor"))
	return svc, cfg, nil
}

func parseIndex(name, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative integer", name, arg)
	}
	return n, nil
}
