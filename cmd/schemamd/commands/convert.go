package commands

import (
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/schemamd/internal/config"
	"github.com/jmylchreest/schemamd/internal/logger"
	"github.com/jmylchreest/schemamd/pkg/schematable"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> [output]",
	Short: "Convert an HTML schema export to a Markdown table",
	Long: `Convert reads the whole export, splits it on the row marker and
extracts the column name, description, API field name and data type of
every row. Fields that cannot be found are left as empty cells.

The output path defaults to the input path with a .md extension and is
overwritten if it exists. Use "-" for stdin or stdout.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	flags.StringP("output", "o", "", "output file (default: input with .md extension, - for stdout)")
	flags.String("strategy", string(schematable.StrategyRegex), "field extraction strategy: regex, dom")
	flags.String("row-marker", schematable.DefaultRowMarker, "literal string that starts each table row")

	_ = viper.BindPFlag("output", flags.Lookup("output"))
	_ = viper.BindPFlag("strategy", flags.Lookup("strategy"))
	_ = viper.BindPFlag("row_marker", flags.Lookup("row-marker"))
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(viper.GetViper(), args...)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return err
	}
	log := logger.With("input", cfg.Input, "output", cfg.Output)
	log.Debug("convert command starting", "strategy", cfg.Strategy)

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts = append(opts, schematable.WithStdio(cmd.InOrStdin(), cmd.OutOrStdout()))

	result, err := schematable.ConvertFile(ctx, cfg.Input, cfg.Output, opts...)
	if err != nil {
		log.Error("conversion failed", "error", err)
		return err
	}

	if result.Rows == 0 {
		log.Warn("no rows found", "row_marker", cfg.RowMarker)
	}

	if cfg.Output != schematable.StdioPath {
		logInfo(cmd, "Converted %d rows to %s (%s)", result.Rows, cfg.Output, humanize.Bytes(uint64(result.OutputBytes)))
	}
	return nil
}
