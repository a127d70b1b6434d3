package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/zostay/mimewrap"
	"github.com/zostay/mimewrap/envelope"
	"github.com/zostay/mimewrap/internal/config"
	"github.com/zostay/mimewrap/message/header"
	_ "github.com/zostay/mimewrap/message/header/encoding" // all IANA charsets for header_charset
	"github.com/zostay/mimewrap/normalize"
)

type options struct {
	sidecar            string
	noSidecar          bool
	output             string
	mediaType          string
	configFile         string
	normalizeDate      bool
	normalizeAddresses bool
	verbose            bool
}

// NewRootCmd returns the mimewrap command.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "mimewrap [flags] input",
		Short: "Wrap a file into a MIME message using header fields from a sidecar",
		Long: `Wrap a file into a MIME message using header fields from a sidecar.

The sidecar holds one "Name: value" header field per line. Lines starting with
# are comments. By default the sidecar is found next to the input by replacing
or appending the sidecar extension, and the message is written next to the
input with the output extension.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrap(cmd, opts, args[0])
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.sidecar, "sidecar", "s", "", "sidecar path (default: discovered next to the input)")
	flags.BoolVar(&opts.noSidecar, "no-sidecar", false, "wrap with no user header fields")
	flags.StringVarP(&opts.output, "output", "o", "", "output path (default: input with the output extension)")
	flags.StringVarP(&opts.mediaType, "media-type", "t", "", "media type of the input (default: guessed)")
	flags.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	flags.BoolVar(&opts.normalizeDate, "normalize-date", false, "rewrite Date fields into RFC 5322 form")
	flags.BoolVar(&opts.normalizeAddresses, "normalize-addresses", false, "rewrite address fields into canonical form")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debugging details")
	rootCmd.MarkFlagsMutuallyExclusive("sidecar", "no-sidecar")

	return rootCmd
}

// Execute runs the mimewrap command.
func Execute() error {
	return NewRootCmd().Execute()
}

func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = config.LoadFromFile(opts.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("normalize-date") {
		cfg.Normalize.Date = opts.normalizeDate
	}
	if flags.Changed("normalize-addresses") {
		cfg.Normalize.Addresses = opts.normalizeAddresses
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func newAssembler(cfg *config.Config, logger *slog.Logger) (*envelope.Assembler, error) {
	vf, err := cfg.FoldEncoding()
	if err != nil {
		return nil, err
	}

	aopts := []envelope.Option{
		envelope.WithBreak(cfg.Break()),
		envelope.WithFoldEncoding(vf),
		envelope.WithCharset(cfg.Output.HeaderCharset),
		envelope.WithLogger(logger),
	}

	if cfg.Normalize.Date {
		aopts = append(aopts, envelope.WithNormalizer(header.Date, normalize.Date))
	}

	if cfg.Normalize.Addresses {
		for _, name := range normalize.AddressFields {
			aopts = append(aopts, envelope.WithNormalizer(name, normalize.Addresses))
		}
	}

	return envelope.New(aopts...), nil
}

func runWrap(cmd *cobra.Command, opts *options, input string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	lvl, _ := cfg.LogLevel()
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))

	job := mimewrap.Job{
		Input:     input,
		Sidecar:   opts.sidecar,
		Output:    opts.output,
		MediaType: opts.mediaType,
	}

	if job.Sidecar == "" && !opts.noSidecar {
		job.Sidecar, err = mimewrap.FindSidecar(input, cfg.Sidecar.Extension)
		if err != nil {
			return fmt.Errorf("%w (use --sidecar to name one or --no-sidecar to go without)", err)
		}
		logger.Debug("found sidecar", "sidecar", job.Sidecar)
	}

	if job.Output == "" {
		job.Output = mimewrap.DefaultOutput(input, cfg.Output.Extension)
	}

	a, err := newAssembler(cfg, logger)
	if err != nil {
		return err
	}

	w := mimewrap.New(
		mimewrap.WithAssembler(a),
		mimewrap.WithLogger(logger),
	)

	return w.Run(job)
}
