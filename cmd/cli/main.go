package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tablens/adapters/excel"
	"tablens/app"
	"tablens/domain/table"
	"tablens/internal/config"
	"tablens/internal/container"
	"tablens/internal/errors"
	"tablens/internal/wordcloud"
)

// cliState carries the persistent flags and the container built from them.
type cliState struct {
	configPath string
	format     string
	sheet      string
	query      string
	limit      int
	strict     bool

	c *container.Container
}

func main() {
	_ = godotenv.Load()

	st := &cliState{}
	rootCmd := &cobra.Command{
		Use:           "tablens",
		Short:         "Profile, summarise and chart tabular data from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.init(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if st.c != nil {
				return st.c.Close()
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&st.configPath, "config", os.Getenv("TABLENS_CONFIG"), "config file (yaml, json or toml)")
	flags.StringVarP(&st.format, "format", "f", "json", "output format: json|yaml (report also md|html, cloud also svg)")
	flags.StringVar(&st.sheet, "sheet", "", "worksheet name for xlsx input (default first sheet)")
	flags.StringVar(&st.query, "query", "", "read the table from Postgres with this SQL instead of a file")
	flags.BoolVar(&st.strict, "strict", false, "exit non-zero when an analysis reports a non-ok outcome")
	flags.IntVar(&st.limit, "limit", 0, "row limit for --query (0 keeps the source default)")

	rootCmd.AddCommand(
		newProfileCmd(st),
		newStatsCmd(st),
		newCorrelateCmd(st),
		newScatterCmd(st),
		newChartCmd(st),
		newWordsCmd(st),
		newSentimentCmd(st),
		newCloudCmd(st),
		newReportCmd(st),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error [%s]: %v\n", errors.GetCode(err), err)
		os.Exit(1)
	}
}

func (st *cliState) init(ctx context.Context) error {
	cfg, err := config.Load(st.configPath)
	if err != nil {
		return err
	}
	c, err := container.New(cfg)
	if err != nil {
		return err
	}
	st.c = c
	if st.query != "" || cfg.Database.URL != "" {
		if err := c.InitWithDatabase(ctx); err != nil {
			return err
		}
	}
	return nil
}

// load reads the table named by args[0], or runs --query when set.
func (st *cliState) load(ctx context.Context, args []string) (*table.Table, error) {
	if st.query != "" {
		src, err := st.c.TableSource()
		if err != nil {
			return nil, err
		}
		if st.limit > 0 {
			src.WithRowLimit(st.limit)
		}
		return src.Query(ctx, st.query)
	}
	if len(args) == 0 {
		return nil, errors.InvalidInput("a data file or --query is required")
	}
	cfg := excel.DefaultReaderConfig()
	cfg.Sheet = st.sheet
	return excel.NewDataReader(args[0]).WithConfig(cfg).WithLogger(st.c.Logger).ReadTable()
}

func (st *cliState) analysis() *app.AnalysisService { return st.c.Analysis }

func newProfileCmd(st *cliState) *cobra.Command {
	var purpose string
	cmd := &cobra.Command{
		Use:   "profile [file]",
		Short: "Infer column types and sample statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := st.load(cmd.Context(), args)
			if err != nil {
				return err
			}
			profiles := st.analysis().GetColumnProfiles(t, app.Purpose(purpose))
			return st.emit(cmd, profiles)
		},
	}
	cmd.Flags().StringVar(&purpose, "purpose", string(app.PurposeStatistics), "sampling preset: chart|correlation|statistics")
	return cmd
}

func newStatsCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Descriptive statistics for every numeric column",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := st.load(cmd.Context(), args)
			if err != nil {
				return err
			}
			return st.emit(cmd, st.analysis().ComputeDescriptiveStatistics(t))
		},
	}
}

func newCorrelateCmd(st *cliState) *cobra.Command {
	var columns []string
	cmd := &cobra.Command{
		Use:   "correlate [file]",
		Short: "Pairwise Pearson correlation matrix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := st.load(cmd.Context(), args)
			if err != nil {
				return err
			}
			return st.emit(cmd, st.analysis().ComputeCorrelationMatrix(t, columns))
		},
	}
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to correlate (default all numeric)")
	return cmd
}

func newScatterCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "scatter x-column y-column [file]",
		Short: "Scatter points and least-squares line for two columns",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := st.load(cmd.Context(), args[2:])
			if err != nil {
				return err
			}
			return st.emit(cmd, st.analysis().ComputeScatterRegression(t, args[0], args[1]))
		},
	}
}

func newChartCmd(st *cliState) *cobra.Command {
	var req app.ChartRequest
	cmd := &cobra.Command{
		Use:   "chart [file]",
		Short: "Aggregate measures by a category column",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := st.load(cmd.Context(), args)
			if err != nil {
				return err
			}
			return st.emit(cmd, st.analysis().ComputeChartSeries(t, req))
		},
	}
	cmd.Flags().StringVar(&req.XColumn, "x", "", "category column (default picked from the table)")
	cmd.Flags().StringSliceVar(&req.Measures, "measure", nil, "measure columns")
	cmd.Flags().StringVar(&req.GroupColumn, "group", "", "optional second-level group column")
	cmd.Flags().BoolVar(&req.Percentage, "percentage", false, "add percentage of total per measure")
	cmd.Flags().IntVar(&req.MaxPartitions, "max-partitions", 0, "keep at most this many partitions")
	return cmd
}

func newWordsCmd(st *cliState) *cobra.Command {
	var column string
	var top int
	cmd := &cobra.Command{
		Use:   "words [file]",
		Short: "Ranked token frequencies for a text column",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := st.load(cmd.Context(), args)
			if err != nil {
				return err
			}
			return st.emit(cmd, st.analysis().ComputeWordFrequency(t, column, top))
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "text column (default picked from the table)")
	cmd.Flags().IntVar(&top, "top", 0, "number of tokens to keep (default from config)")
	return cmd
}

func newSentimentCmd(st *cliState) *cobra.Command {
	var column string
	cmd := &cobra.Command{
		Use:   "sentiment [file]",
		Short: "Lexicon sentiment breakdown of a text column",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := st.load(cmd.Context(), args)
			if err != nil {
				return err
			}
			return st.emit(cmd, st.analysis().ComputeSentimentBreakdown(t, column))
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "text column (default picked from the table)")
	return cmd
}

func newCloudCmd(st *cliState) *cobra.Command {
	var column string
	var opts wordcloud.Options
	cmd := &cobra.Command{
		Use:   "cloud [file]",
		Short: "Lay out a word cloud for a text column",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := st.load(cmd.Context(), args)
			if err != nil {
				return err
			}
			layout := st.analysis().WordCloud(t, column, opts)
			if strings.EqualFold(st.format, "svg") {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), layout.SVG())
				return err
			}
			return st.emit(cmd, layout)
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "text column (default picked from the table)")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "canvas height")
	cmd.Flags().StringVar(&opts.Scheme, "scheme", "", "colour scheme: default|blue|green|purple|rainbow")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "layout seed (default from config)")
	return cmd
}

func newReportCmd(st *cliState) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Run every analysis and render a report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := st.load(cmd.Context(), args)
			if err != nil {
				return err
			}
			if title == "" && len(args) > 0 {
				title = args[0]
			}
			report, err := st.c.Reports.Build(cmd.Context(), t, title)
			if err != nil {
				return err
			}
			switch strings.ToLower(st.format) {
			case "md", "markdown":
				_, err = fmt.Fprint(cmd.OutOrStdout(), report.Markdown())
				return err
			case "html":
				_, err = fmt.Fprint(cmd.OutOrStdout(), report.HTML())
				return err
			}
			return st.emit(cmd, report)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "report title (default the file name)")
	return cmd
}
