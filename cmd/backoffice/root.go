package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vendaflow/backoffice/pkg/client"
	"github.com/vendaflow/backoffice/pkg/logger"
)

const envPrefix = "BACKOFFICE"

const (
	apiURLFlag = "api-url"
	modeFlag   = "mode"
	stateFlag  = "state"
)

const defaultAPIURL = "http://localhost:10000"

var globalFlags = map[string]cobraflags.Flag{
	apiURLFlag: &cobraflags.StringFlag{
		Name:  apiURLFlag,
		Value: "",
		Usage: "API base URL (env BACKOFFICE_API_URL, default " + defaultAPIURL + ")",
	},
	modeFlag: &cobraflags.StringFlag{
		Name:  modeFlag,
		Value: "",
		Usage: "Data mode: frontend, backend or auto (env BACKOFFICE_MODE; falls back to the saved mode)",
	},
	stateFlag: &cobraflags.StringFlag{
		Name:  stateFlag,
		Value: "",
		Usage: "Path of the local state file (env BACKOFFICE_STATE)",
	},
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "backoffice",
		Short: "Terminal client for the VendaFlow back office API",
		Long: `Terminal client for the VendaFlow back office API.

Responses are cached for 30 seconds. In auto mode the client switches to
demo data when the API cannot be reached and stays there until the mode is
changed with "backoffice mode".`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newLoginCommand(),
		newLogoutCommand(),
		newMeCommand(),
		newDashboardCommand(),
		newProductsCommand(),
		newModeCommand(),
	)
	return root
}

// withGlobalFlags registers the shared connection flags on cmd.
func withGlobalFlags(cmd *cobra.Command) *cobra.Command {
	cobraflags.RegisterMap(cmd, globalFlags)
	return cmd
}

func env() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(apiURLFlag, defaultAPIURL)
	return v
}

// setting returns the flag value when set, otherwise the environment value.
func setting(v *viper.Viper, name string) string {
	if value := strings.TrimSpace(globalFlags[name].GetString()); value != "" {
		return value
	}
	return strings.TrimSpace(v.GetString(name))
}

func statePath(v *viper.Viper) string {
	if path := setting(v, stateFlag); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "vendaflow", "backoffice.yaml")
}

// newClient wires the SDK from flags, environment and the state file.
func newClient() (*client.Client, *client.FileStore, error) {
	v := env()
	store := client.NewFileStore(statePath(v))
	c, err := client.New(client.Options{
		BaseURL: setting(v, apiURLFlag),
		Mode:    client.Mode(setting(v, modeFlag)),
		Store:   store,
		Logger: logger.New(logger.Options{
			ServiceName: "backoffice-cli",
			Level:       logger.ParseLevel(v.GetString("log_level")),
			Output:      os.Stderr,
			Format:      "console",
		}),
	})
	if err != nil {
		return nil, nil, err
	}
	return c, store, nil
}
