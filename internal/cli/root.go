package cli

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/shine/internal/version"
	"github.com/arthur-debert/shine/pkg/cobrax/topics"
	"github.com/arthur-debert/shine/pkg/config"
	"github.com/arthur-debert/shine/pkg/logging"
	"github.com/arthur-debert/shine/pkg/render"
)

//go:embed topics
var topicFiles embed.FS

// globals holds the persistent flags shared by every command.
type globals struct {
	verbosity  int
	format     string
	noColor    bool
	configFile string
	stylesFile string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:     "shine",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&g.format, "format", "", MsgFlagFormat)
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, MsgFlagNoColor)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&g.stylesFile, "styles", "", MsgFlagStyles)

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return render.Formats(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newShowCmd(g))
	rootCmd.AddCommand(newSayCmd(g))
	rootCmd.AddCommand(newPanelCmd(g))
	rootCmd.AddCommand(newRuleCmd(g))
	rootCmd.AddCommand(newMarkdownCmd(g))
	rootCmd.AddCommand(newCodeCmd(g))
	rootCmd.AddCommand(newAskCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	installTopics(rootCmd, g)

	return rootCmd
}

// overrides turns the global flags into config overrides. Unset flags are
// left out so the file and environment layers still apply.
func (g *globals) overrides() map[string]interface{} {
	o := map[string]interface{}{}
	if g.format != "" {
		o["output.format"] = g.format
	}
	if g.noColor {
		o["output.color"] = config.ColorNever
	}
	if g.stylesFile != "" {
		o["styles.file"] = g.stylesFile
	}
	return o
}

func (g *globals) loadConfig() (*config.Config, error) {
	return config.Load(g.configFile, g.overrides())
}

// renderOptions turns the effective configuration into renderer options.
func (g *globals) renderOptions() ([]render.Option, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	return cfg.RenderOptions()
}

// flagOptions reads only the output flags, for when the configuration
// itself cannot be loaded.
func (g *globals) flagOptions() []render.Option {
	var opts []render.Option
	if format, err := render.ParseFormat(g.format); err == nil {
		opts = append(opts, render.WithFormat(format))
	}
	if g.noColor {
		opts = append(opts, render.WithColor(false))
	}
	return opts
}

// renderer builds a renderer writing to the command's output.
func (g *globals) renderer(cmd *cobra.Command) (*render.Renderer, error) {
	opts, err := g.renderOptions()
	if err != nil {
		return nil, err
	}
	r := render.New(cmd.OutOrStdout(), opts...)
	logger := logging.GetLogger("cli")
	logger.Debug().
		Str("format", r.Format().String()).
		Bool("color", r.Color()).
		Int("width", r.Width()).
		Msg("Renderer ready")
	return r, nil
}

// ReportError writes err as an error message on the command's error output,
// honouring the output flags given on the command line.
func ReportError(cmd *cobra.Command, err error) {
	flags := cmd.Root().PersistentFlags()
	g := &globals{}
	g.format, _ = flags.GetString("format")
	g.noColor, _ = flags.GetBool("no-color")
	g.configFile, _ = flags.GetString("config")
	g.stylesFile, _ = flags.GetString("styles")

	opts, optErr := g.renderOptions()
	if optErr != nil {
		opts = g.flagOptions()
	}
	_ = render.New(cmd.ErrOrStderr(), opts...).Error(err.Error())
}

// installTopics adds the embedded help topics to the help command.
func installTopics(rootCmd *cobra.Command, g *globals) {
	help, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	m, err := topics.Load(help)
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	m.Install(rootCmd, g.renderer)
}
