package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/colorlab-mcp/internal/colormath"
	"github.com/ironsheep/colorlab-mcp/internal/colornames"
	"github.com/ironsheep/colorlab-mcp/internal/config"
	"github.com/ironsheep/colorlab-mcp/internal/server"
	"github.com/ironsheep/colorlab-mcp/internal/swatch"
)

var gradientSteps int

func init() {
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(gradientCmd)
	rootCmd.AddCommand(randomCmd)

	gradientCmd.Flags().IntVarP(&gradientSteps, "steps", "n", 0, "number of colors including both endpoints (default from config)")
}

var previewCmd = &cobra.Command{
	Use:   "preview <hex>",
	Short: "Show a color with its best text color and WCAG badge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hex, err := colormath.Canonical(args[0])
		if err != nil {
			return err
		}
		ratio, err := colormath.TextContrast(string(hex))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, swatch.Block(string(hex)))
		fmt.Fprintf(out, "text %s  %s\n", colormath.BestTextOn(string(hex)), server.Badge(colormath.WCAGLevel(string(hex)), ratio))
		if m, err := colornames.Nearest(string(hex)); err == nil {
			fmt.Fprintf(out, "name %s (%s, distance %v)\n", m.Name, m.Hex, m.Distance)
		}
		return nil
	},
}

var gradientCmd = &cobra.Command{
	Use:   "gradient <from> <to>",
	Short: "Print an HSL gradient between two colors",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := gradientSteps
		if steps == 0 {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			steps = cfg.GradientSteps
		}

		colors, err := colormath.InterpolateHSLStrict(args[0], args[1], steps)
		if err != nil {
			return err
		}

		labels := make([]string, len(colors))
		for i, c := range colors {
			labels[i] = string(c)
		}
		fmt.Fprintln(cmd.OutOrStdout(), swatch.Terminal(labels))
		return nil
	},
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Print a random color",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), swatch.Block(string(colormath.RandomHex())))
	},
}
