package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"kolibri/listcontent/internal/clock"
	"kolibri/listcontent/internal/config"
	"kolibri/listcontent/internal/content"
	"kolibri/listcontent/internal/db"
	"kolibri/listcontent/internal/logging"
	"kolibri/listcontent/internal/report"
)

// rootFlags holds raw flag values; they are layered over the config file in resolveOptions.
type rootFlags struct {
	db            string
	configFile    string
	format        report.Format
	include       []string
	exclude       []string
	pickList      []string
	noOrAvailable bool
	logLevel      string
	noColor       bool
}

// runClock stamps key-file headers.
var runClock clock.Clock = clock.RealClock{}

var rootCmd = NewRootCmd()

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the kolibri-listcontent command.
func NewRootCmd() *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "kolibri-listcontent [OUTPUT]",
		Short: "List installed Kolibri channels and the content selected in each",
		Long: `Outputs a list of installed Kolibri channels and content, which can be used
by an image builder to replicate the selection of Kolibri content from
$KOLIBRI_HOME.

For each channel the selection is reduced to the fewest, coarsest content
nodes that reproduce it: a topic whose content is entirely selected is listed
once instead of listing every item beneath it.

By default every available content node of every installed channel is
selected. Use --include-channel or --exclude-channel to restrict the channels.

With --pick-list-channel, content from the pick list channel is treated as
available in other channels when it has the same content ID and its parent
has the same content ID. This supports curating content in a separate channel
while presenting it in its original channels.

OUTPUT is the file to write, or "-" (the default) for standard output.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cmd, f, args)
			if err != nil {
				return err
			}
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.db, "db", "", "Path to Kolibri's db.sqlite3 (default $KOLIBRI_HOME/db.sqlite3)")
	flags.StringVar(&f.configFile, "config", "", "INI file with defaults in a [listcontent] section")
	flags.VarP(&f.format, "format", "f", "Output format ("+strings.Join(report.FormatNames(), ", ")+")")
	flags.StringArrayVarP(&f.include, "include-channel", "i", nil, "Include `CHANNEL` in the output (repeatable)")
	flags.StringArrayVarP(&f.exclude, "exclude-channel", "x", nil, "Exclude `CHANNEL` from the output (repeatable)")
	flags.StringArrayVar(&f.pickList, "pick-list-channel", nil, "Use `CHANNEL` as a pick list (repeatable)")
	flags.BoolVar(&f.noOrAvailable, "no-or-available", false, "With a pick list, do not also select content that is available locally")
	flags.StringVar(&f.logLevel, "loglevel", logging.DefaultLevel, "Log level ("+strings.Join(logging.Levels, ", ")+")")
	flags.BoolVar(&f.noColor, "no-color", false, "Disable colored plain output")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(report.FormatNames(), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("loglevel", cobra.FixedCompletions(logging.Levels, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// resolveOptions merges defaults, the config file, and the flags that were set.
func resolveOptions(cmd *cobra.Command, f *rootFlags, args []string) (config.Options, error) {
	opts := config.Defaults()
	if f.configFile != "" {
		if err := config.LoadFile(f.configFile, &opts); err != nil {
			return opts, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("db") {
		opts.Database = f.db
	}
	if changed("format") {
		opts.Format = f.format
	}
	if changed("include-channel") {
		opts.IncludeChannels = f.include
	}
	if changed("exclude-channel") {
		opts.ExcludeChannels = f.exclude
	}
	if changed("pick-list-channel") {
		opts.PickListChannels = f.pickList
	}
	if changed("no-or-available") {
		opts.OrAvailable = !f.noOrAvailable
	}
	if changed("loglevel") {
		opts.LogLevel = f.logLevel
	}
	opts.NoColor = f.noColor
	if len(args) == 1 {
		opts.Output = args[0]
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

func run(cmd *cobra.Command, opts config.Options) error {
	ctx := cmd.Context()

	log, err := logging.New(opts.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	toStdout := opts.Output == "-"
	writer, err := report.NewWriter(opts.Format, report.WriterOptions{
		Color: toStdout && !opts.NoColor && !color.NoColor && cmd.OutOrStdout() == os.Stdout,
		Clock: runClock,
	})
	if err != nil {
		return err
	}

	path, err := config.DiscoverDB(opts.Database)
	if err != nil {
		return err
	}
	d, err := db.OpenDB(ctx, path, log)
	if err != nil {
		return err
	}
	defer d.Close()

	store := content.NewDBStore(d)
	selector := newSelector(store, opts, log)

	include, exclude := opts.ChannelFilter()
	channels, err := store.Channels(ctx, include, exclude)
	if err != nil {
		return err
	}
	log.WithField("channels", len(channels)).Info("Selecting content")

	rep, err := report.NewBuilder(store, selector, log).Build(ctx, channels)
	if err != nil {
		return err
	}

	if toStdout {
		return writer.Write(cmd.OutOrStdout(), rep)
	}
	return writeFile(opts.Output, writer, rep)
}

func newSelector(store content.Store, opts config.Options, log *logrus.Entry) content.Selector {
	if len(opts.PickListChannels) > 0 {
		log.WithField("pick_list", opts.PickListChannels).Info("Selecting content by pick list")
		return content.NewPickListSelector(store, opts.PickListChannels, opts.OrAvailable, log)
	}
	return content.NewAvailableSelector(store)
}

func writeFile(path string, writer report.Writer, rep *report.Report) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
	}()

	if err := writer.Write(out, rep); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
