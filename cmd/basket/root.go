// Root command for the basket CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/basket/internal/cart"
	"github.com/mesh-intelligence/basket/internal/logger"
	"github.com/mesh-intelligence/basket/internal/paths"
	"github.com/mesh-intelligence/basket/pkg/basket"
	"github.com/mesh-intelligence/basket/pkg/types"
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	jsonMode  bool
}

// app is the state shared by one invocation of the CLI.
type app struct {
	flags  rootFlags
	cfg    *viper.Viper
	out    io.Writer
	errOut io.Writer
	log    *slog.Logger
}

// newRootCmd creates the top-level "basket" command with global flags and
// all subcommands registered.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:     "basket",
		Short:   "Basket keeps a local shopping cart",
		Long:    "Basket keeps a shopping cart in a local key-value store and lets you\nadd items and adjust their quantities.",
		Version: basket.Version,
		// Errors are printed once by main.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().StringVar(&a.flags.backend, "backend", "", "storage backend: sqlite, file, redis, memory")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")

	root.AddCommand(newVersionCmd(a))
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newIncCmd(a))
	root.AddCommand(newDecCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newTotalCmd(a))

	return root
}

// setup loads config.yaml and configures logging.
func (a *app) setup() error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	a.cfg = cfg
	a.log = logger.New(a.errOut, logger.Options{
		Level:  cfg.GetString(cfgKeyLogLevel),
		Format: cfg.GetString(cfgKeyLogFormat),
	})
	return nil
}

// storeConfig builds the backend configuration from flags and config.yaml.
func (a *app) storeConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	backendName := a.cfg.GetString(cfgKeyBackend)
	if a.flags.backend != "" {
		backendName = a.flags.backend
	}

	cfg := types.Config{
		Backend:     backendName,
		DataDir:     dataDir,
		RedisAddr:   a.cfg.GetString(cfgKeyRedisAddr),
		RedisPrefix: a.cfg.GetString(cfgKeyRedisPrefix),
		Sync: types.SyncConfig{
			Strategy:      a.cfg.GetString(cfgKeySyncStrategy),
			BatchSize:     a.cfg.GetInt(cfgKeyBatchSize),
			BatchInterval: a.cfg.GetInt(cfgKeyBatchInterval),
		},
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, userError(fmt.Errorf("config: %w", err))
	}
	return cfg, nil
}

// withCart mounts a cart provider, runs fn with the cart context, and
// unmounts it so every pending write lands before the process exits.
func (a *app) withCart(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return err
	}

	p := &cart.Provider{Config: cfg, Logger: a.log}
	cartCtx, err := p.Mount(ctx)
	if err != nil {
		return sysError(err)
	}
	defer func() {
		if uerr := p.Unmount(ctx); uerr != nil && err == nil {
			err = sysError(fmt.Errorf("save cart: %w", uerr))
		}
	}()

	return fn(cartCtx)
}
