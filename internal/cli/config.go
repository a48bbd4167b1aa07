package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/clothsim/pkg/config"
	"github.com/matzehuels/clothsim/pkg/errors"
)

const defaultConfigFile = appName + ".toml"

func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write, show and validate settings files",
	}
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configValidateCommand())
	return cmd
}

func (c *CLI) configInitCommand() *cobra.Command {
	var output string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default settings to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := writeDefaultSettings(output, force); err != nil {
				return err
			}
			out := newPrinter(cmd.OutOrStdout())
			out.success("Wrote %s", output)
			out.hint("Try it", fmt.Sprintf("%s run --config %s", appName, output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", defaultConfigFile, "settings file to create")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func writeDefaultSettings(path string, force bool) error {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if os.IsExist(err) {
		return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	if err := config.Encode(f, config.Default()); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return f.Close()
}

func (c *CLI) configShowCommand() *cobra.Command {
	var path string
	var asTOML bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(path, cmd.Flags(), nil)
			if err != nil {
				return err
			}
			if asTOML {
				return config.Encode(cmd.OutOrStdout(), s)
			}
			fmt.Fprintln(cmd.OutOrStdout(), settingsTable(s))
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "settings file (default: built-in settings)")
	cmd.Flags().BoolVar(&asTOML, "toml", false, "print as TOML")
	return cmd
}

func settingsTable(s config.Settings) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	c := s.Cloth
	rows := [][]string{
		{"viewport", "width", f(c.Width)},
		{"", "height", f(c.Height)},
		{"lattice", "spacing", f(c.Spacing)},
		{"", "cols", strconv.Itoa(c.Cols)},
		{"", "rows", strconv.Itoa(c.Rows)},
		{"", "top_offset", f(c.TopOffset)},
		{"pointer", "drag_radius", f(c.DragRadius)},
		{"", "cut_radius", f(c.CutRadius)},
		{"", "drag_amplification", f(c.DragAmplification)},
		{"physics", "gravity", f(c.Gravity)},
		{"", "wind_x", f(c.WindX)},
		{"", "wind_y", f(c.WindY)},
		{"", "tear_factor", f(c.TearFactor)},
		{"", "velocity_damping", f(c.VelocityDamping)},
		{"", "time_step", f(c.TimeStep)},
		{"interactive", "fps", strconv.Itoa(s.FPS)},
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("Section", "Key", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader.Padding(0, 1)
			case col == 2:
				return StyleNumber.Padding(0, 1)
			case col == 0:
				return StyleTitle.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		}).
		String()
}

func (c *CLI) configValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a settings file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Load(args[0]); err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).success("%s is valid", args[0])
			return nil
		},
	}
}
