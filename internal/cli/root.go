package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	cycler "github.com/iwtcode/cyclerAdapter"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	logLevel string
	cfg      *cycler.Config
}

// NewRootCmd собирает дерево команд. Значения по умолчанию берутся из окружения;
// файл .env читает только Execute.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "cycler",
		Short: "Translate battery cycling test plans into cycler driver configs",
		Long: `cycler reads a declarative battery cycling test plan (YAML or JSON),
builds the experiment plan tree and maps it onto the flat configuration
of a cycler driver.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !cmd.Flags().Changed("log-level") && flags.cfg.LogLevel != "" {
				flags.logLevel = flags.cfg.LogLevel
			}
		},
	}

	flags.cfg = cycler.Load()

	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level: debug, info, warn, error, off")

	rootCmd.AddCommand(newPlanCmd(flags))
	rootCmd.AddCommand(newConvertCmd(flags))
	rootCmd.AddCommand(newDriversCmd())

	return rootCmd
}

// Execute запускает CLI и завершает процесс с кодом 1 при ошибке.
func Execute() {
	loadEnvFile(".env")
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadEnvFile дополняет окружение из файла; уже заданные переменные не перезаписываются.
func loadEnvFile(path string) {
	if err := godotenv.Load(path); err != nil {
		logrus.WithError(err).WithField("path", path).Debug("Файл окружения не загружен")
	}
}

func (f *rootFlags) logger() *logrus.Logger {
	return cycler.NewLogger(f.logLevel)
}

// planPath берет путь из аргумента или из CYCLER_PLAN.
func (f *rootFlags) planPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if f.cfg.PlanPath != "" {
		return f.cfg.PlanPath, nil
	}
	return "", fmt.Errorf("no plan file given: pass PLAN or set CYCLER_PLAN")
}

func printJSON(w io.Writer, data interface{}) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
