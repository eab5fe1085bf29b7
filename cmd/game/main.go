package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Garsondee/Drone-Harvest/internal/config"
	"github.com/Garsondee/Drone-Harvest/internal/game"
	"github.com/Garsondee/Drone-Harvest/internal/logging"
)

func main() {
	var configPath string
	var debug bool

	root := &cobra.Command{
		Use:          "drone-harvest",
		Short:        "Fly the drone, harvest energy, outrun the corruption",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if debug {
				cfg.Logging.Level = "debug"
			}
			logger, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			g, err := game.New(cfg, logger)
			if err != nil {
				return err
			}
			ebiten.SetWindowTitle("Drone Harvest")
			ebiten.SetWindowSize(g.WindowSize())
			if err := ebiten.RunGame(g); err != nil {
				logger.Error("game exited", zap.Error(err))
				return err
			}
			return nil
		},
	}
	root.Flags().StringVarP(&configPath, "config", "c", "drone-harvest.yaml", "YAML config; missing file uses defaults")
	root.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
