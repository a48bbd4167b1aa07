package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func (c *CLI) runCommand() *cobra.Command {
	var (
		configPath string
		logFile    string
		fps        int
		physics    physicsFlags
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the cloth interactively in the terminal",
		Long: `Run the cloth interactively. Hold the left mouse button to drag the cloth,
hold the right button to cut it.

Keys: space pause · n single step while paused · r reset · q quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(configPath, cmd.Flags(), &physics)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("fps") {
				settings.FPS = fps
				if err := settings.Validate(); err != nil {
					return err
				}
			}

			logger, closeLog, err := openLogFile(logFile, c.Logger.GetLevel())
			if err != nil {
				return err
			}
			defer closeLog()

			ctx := withLogger(cmd.Context(), logger)
			m, err := NewClothModel(ctx, settings, logger)
			if err != nil {
				return err
			}

			start := time.Now()
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
			final, err := p.Run()

			if fm, ok := final.(ClothModel); ok {
				m = fm
			}
			m.complete(err)
			frames, runID := m.Frames(), m.RunID()
			logger.Info("session ended", "run", runID, "frames", frames, "duration", time.Since(start).Round(time.Millisecond))
			if err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).note("Stepped %d frames", frames)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "settings file (TOML)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file (the terminal is taken by the UI)")
	cmd.Flags().IntVar(&fps, "fps", 0, "frames per second (default from settings, 60)")
	physics.register(cmd.Flags())

	return cmd
}
