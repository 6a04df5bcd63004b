package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/bondpv/config"
	"github.com/rustyeddy/bondpv/internal/logger"
	"github.com/rustyeddy/bondpv/journal"
	"github.com/rustyeddy/bondpv/pkg/id"
	"github.com/rustyeddy/bondpv/pv"
	"github.com/rustyeddy/bondpv/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions carries flag values and the logger shared by subcommands.
type rootOptions struct {
	nominal     float64
	coupon      float64
	discount    float64
	duration    float64
	period      float64
	method      string
	configPath  string
	journalType string
	journalPath string
	breakdown   bool
	logLevel    string
	logFormat   string

	log *zap.Logger
}

// Execute builds the command tree and runs it.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:   "bondpv",
		Short: "Present value of a fixed-coupon bond's cash flows",
		Long: `bondpv discounts the coupons and the redemption of a fixed-coupon bond
and prints their present value, rounded to cents (half-to-even).

Rates are annual percentages. period is the number of payments per year and
period * duration must be a whole number of payments.

Examples:
  bondpv
  bondpv --nom_price 1000 --cou_rate 6 --dis_rate 6 --duration 2 --period 2
  bondpv --config bond.yaml --journal sqlite --journal-path ./bondpv.sqlite`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, format := opts.logLevel, opts.logFormat
			if opts.configPath != "" {
				// load errors surface when the valuation resolves its config
				if cfg, err := config.LoadFromFile(opts.configPath); err == nil {
					if !cmd.Flags().Changed("log-level") {
						level = cfg.Log.Level
					}
					if !cmd.Flags().Changed("log-format") {
						format = cfg.Log.Format
					}
				}
			}
			log, err := logger.New(level, format)
			if err != nil {
				return err
			}
			opts.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresentValue(cmd, opts)
		},
	}

	f := rootCmd.Flags()
	f.Float64Var(&opts.nominal, "nom_price", defaults.Bond.NominalPrice, "nominal (face) value of the bond")
	f.Float64Var(&opts.coupon, "cou_rate", defaults.Bond.CouponRate, "annual coupon rate in percent")
	f.Float64Var(&opts.discount, "dis_rate", defaults.Bond.DiscountRate, "annual discount rate in percent")
	f.Float64Var(&opts.duration, "duration", defaults.Bond.Duration, "years to maturity (0.5 for six months)")
	f.Float64Var(&opts.period, "period", defaults.Bond.Period, "payments per year")
	f.StringVar(&opts.method, "method", defaults.Bond.Method, "coupon summation: iterative or closed-form")
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML or JSON file with default terms")
	f.StringVar(&opts.journalType, "journal", "", "record the valuation: none, csv or sqlite")
	f.StringVar(&opts.journalPath, "journal-path", "", "journal file (default ./valuations.csv or ./bondpv.sqlite)")
	f.BoolVar(&opts.breakdown, "breakdown", false, "print the coupon and principal components")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.logLevel, "log-level", defaults.Log.Level, "log level: debug, info, warn, error")
	pf.StringVar(&opts.logFormat, "log-format", defaults.Log.Format, "log format: console or json")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// resolve merges defaults, the optional config file and explicitly set
// flags, in that order.
func (o *rootOptions) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.LoadFromFile(o.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("nom_price") {
		cfg.Bond.NominalPrice = o.nominal
	}
	if f.Changed("cou_rate") {
		cfg.Bond.CouponRate = o.coupon
	}
	if f.Changed("dis_rate") {
		cfg.Bond.DiscountRate = o.discount
	}
	if f.Changed("duration") {
		cfg.Bond.Duration = o.duration
	}
	if f.Changed("period") {
		cfg.Bond.Period = o.period
	}
	if f.Changed("method") {
		cfg.Bond.Method = o.method
	}
	if f.Changed("journal") {
		cfg.Journal.Type = o.journalType
	}
	if f.Changed("journal-path") {
		cfg.Journal.Path = o.journalPath
	}
	if cfg.Journal.Path == "" {
		cfg.Journal.Path = config.DefaultJournalPath(cfg.Journal.Type)
	}
	return cfg, nil
}

func runPresentValue(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.resolve(cmd)
	if err != nil {
		return err
	}

	method, err := pv.ParseMethod(cfg.Bond.Method)
	if err != nil {
		return err
	}
	in := cfg.Bond.Inputs()
	in.Method = method

	res, err := pv.Breakdown(in)
	if err != nil {
		opts.log.Debug("valuation rejected",
			zap.Float64("period", in.Period),
			zap.Float64("duration", in.Duration),
			zap.Error(err))
		return err
	}
	opts.log.Debug("valuation computed",
		zap.Float64("nominal_price", in.NominalPrice),
		zap.Float64("coupon_rate", in.CouponRate),
		zap.Float64("discount_rate", in.DiscountRate),
		zap.Int("periods", res.Periods),
		zap.String("method", string(method)),
		zap.Float64("present_value", res.PresentValue))

	// nothing reaches stdout unless the valuation was also recorded
	if err := record(cfg.Journal, journal.NewValuation(in, res), opts); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report.Line(res.PresentValue, in.NominalPrice, in.Duration))
	if opts.breakdown {
		return report.Breakdown(out, res)
	}
	return nil
}

func record(jc config.JournalConfig, v journal.Valuation, opts *rootOptions) error {
	if jc.Type == "" || jc.Type == journal.TypeNone {
		return nil
	}

	j, err := journal.Open(jc.Type, jc.Path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	v.Time = time.Now().UTC()
	v.ID = id.NewAt(v.Time)
	if err := j.RecordValuation(v); err != nil {
		return fmt.Errorf("record valuation: %w", err)
	}

	opts.log.Info("valuation recorded",
		zap.String("id", v.ID),
		zap.String("journal", jc.Type),
		zap.String("path", jc.Path))
	return nil
}
