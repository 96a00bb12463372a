package cli

import (
	"fmt"

	cycler "github.com/iwtcode/cyclerAdapter"
	"github.com/iwtcode/cyclerAdapter/drivers"
	"github.com/iwtcode/cyclerAdapter/internal/document"
	"github.com/spf13/cobra"
)

func newPlanCmd(flags *rootFlags) *cobra.Command {
	var summaryOnly bool

	cmd := &cobra.Command{
		Use:   "plan [PLAN]",
		Short: "Validate a plan file and print the parsed plan tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := flags.planPath(args)
			if err != nil {
				return err
			}
			doc, err := document.LoadPlan(path)
			if err != nil {
				return err
			}
			c, err := cycler.New(doc, flags.cfg.Driver, nil, cycler.WithLogger(flags.logger()))
			if err != nil {
				return err
			}
			if summaryOnly {
				return printJSON(cmd.OutOrStdout(), c.Summary())
			}
			return printJSON(cmd.OutOrStdout(), c.Plan().ToDocument())
		},
	}

	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "Print only node counts and expanded step count")
	return cmd
}

func newConvertCmd(flags *rootFlags) *cobra.Command {
	var (
		driver        string
		overridesPath string
		assignments   []string
	)

	cmd := &cobra.Command{
		Use:   "convert [PLAN]",
		Short: "Map a plan file onto a driver configuration",
		Long: `Map a plan file onto a driver configuration and print it as JSON.

Overrides are applied in order: first the overrides file, then every --set.
Keys that the driver configuration does not know are ignored.

Examples:
  cycler convert plan.yaml
  cycler convert plan.yaml --driver maccor --set channel=12 --set test_name=cell_07
  cycler convert plan.yaml --overrides maccor.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := flags.planPath(args)
			if err != nil {
				return err
			}
			doc, err := document.LoadPlan(path)
			if err != nil {
				return err
			}

			var overrides drivers.Overrides
			if overridesPath == "" {
				overridesPath = flags.cfg.OverridesPath
			}
			if overridesPath != "" {
				if overrides, err = document.LoadOverrides(overridesPath); err != nil {
					return err
				}
			}
			set, err := document.ParseAssignments(assignments)
			if err != nil {
				return err
			}
			overrides = append(overrides, set...)

			if driver == "" {
				driver = flags.cfg.Driver
			}
			c, err := cycler.New(doc, driver, overrides, cycler.WithLogger(flags.logger()))
			if err != nil {
				return err
			}
			cfg, err := c.GetDriverConfig()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), cfg.ToDocument())
		},
	}

	cmd.Flags().StringVarP(&driver, "driver", "d", "", "Driver name (default from CYCLER_DRIVER)")
	cmd.Flags().StringVar(&overridesPath, "overrides", "", "YAML/JSON file with driver config overrides")
	cmd.Flags().StringArrayVar(&assignments, "set", nil, "Override a driver config field, key=value (repeatable)")
	return cmd
}

func newDriversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "List registered drivers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range cycler.DefaultRegistry(nil).Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
