// Package cli implements the notectl command line client.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"notestack-be/pkg/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	keyServer = "server"
	keyToken  = "token"

	defaultServer = "http://localhost:5000"
)

// app carries what every command shares: settings and the output streams.
type app struct {
	v   *viper.Viper
	in  io.Reader
	out io.Writer
}

func (a *app) client() *client.Client {
	return client.New(a.v.GetString(keyServer), client.WithToken(a.v.GetString(keyToken)))
}

func (a *app) requireLogin() (*client.Client, error) {
	if a.v.GetString(keyToken) == "" {
		return nil, fmt.Errorf("not logged in, run 'notectl login' first")
	}
	return a.client(), nil
}

// saveToken persists the session token next to the server address.
func (a *app) saveToken(token string) error {
	a.v.Set(keyToken, token)

	path := a.v.ConfigFileUsed()
	if path == "" {
		path = filepath.Join(configDir(), "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return a.v.WriteConfigAs(path)
}

func (a *app) success(format string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(a.out, format+"\n", args...)
}

func (a *app) warn(format string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(a.out, format+"\n", args...)
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "notectl")
	}
	return "."
}

// NewRootCommand builds the command tree. A nil viper gets a fresh instance
// reading $XDG_CONFIG_HOME/notectl/config.yaml and NOTECTL_* variables.
func NewRootCommand(v *viper.Viper) *cobra.Command {
	if v == nil {
		v = viper.New()
	}
	a := &app{v: v}

	root := &cobra.Command{
		Use:           "notectl",
		Short:         "Command line client for NoteStack",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.in = cmd.InOrStdin()
			a.out = cmd.OutOrStdout()
			return initConfig(v, cmd)
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/notectl/config.yaml)")
	root.PersistentFlags().String(keyServer, "", "NoteStack server URL")
	_ = v.BindPFlag(keyServer, root.PersistentFlags().Lookup(keyServer))

	root.AddCommand(
		newRegisterCommand(a),
		newLoginCommand(a),
		newWhoamiCommand(a),
		newNotesCommand(a),
		newNotebooksCommand(a),
		newShareCommand(a),
		newReceiveCommand(a),
	)
	return root
}

func initConfig(v *viper.Viper, cmd *cobra.Command) error {
	v.SetDefault(keyServer, defaultServer)

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir())
	}

	v.SetEnvPrefix("NOTECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing file is fine: login creates it.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// Execute runs notectl with the process arguments.
func Execute() error {
	return NewRootCommand(nil).Execute()
}
