package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/shine/internal/version"
	"github.com/arthur-debert/shine/pkg/config"
	"github.com/arthur-debert/shine/pkg/errors"
	"github.com/arthur-debert/shine/pkg/logging"
	"github.com/arthur-debert/shine/pkg/payload"
	"github.com/arthur-debert/shine/pkg/prompt"
	"github.com/arthur-debert/shine/pkg/render"
	"github.com/arthur-debert/shine/pkg/style"
)

func newShowCmd(g *globals) *cobra.Command {
	var (
		title     string
		asYAML    bool
		maxRows   int
		cellWidth int
	)

	cmd := &cobra.Command{
		Use:   "show [FILE|-]",
		Short: MsgShowShort,
		Long:  MsgShowLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.show")

			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			data, err := readInput(cmd, path)
			if err != nil {
				return err
			}

			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}

			var opts []render.CallOption
			if maxRows > 0 {
				opts = append(opts, render.MaxRows(maxRows))
			}
			if cellWidth > 0 {
				opts = append(opts, render.CellWidth(cellWidth))
			}

			var input any = strings.TrimSpace(string(data))
			if asYAML {
				if input, err = payload.DecodeYAML(data); err != nil {
					return err
				}
			}

			res, err := r.Render(input, title, opts...)
			if err != nil {
				return err
			}
			logger.Info().
				Str("path", path).
				Str("kind", res.Kind.String()).
				Int("rows", res.Rows).
				Int("hidden", res.Hidden).
				Msg("Rendered input")
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", MsgFlagTitle)
	cmd.Flags().BoolVar(&asYAML, "yaml", false, MsgFlagYAML)
	cmd.Flags().IntVar(&maxRows, "max-rows", 0, MsgFlagMaxRows)
	cmd.Flags().IntVar(&cellWidth, "cell-width", 0, MsgFlagCellWidth)
	return cmd
}

func newSayCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "say CATEGORY TEXT...",
		Short: MsgSayShort,
		Long:  MsgSayLong,
		Args:  cobra.MinimumNArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			names := make([]string, 0, len(style.Categories()))
			for _, c := range style.Categories() {
				names = append(names, string(c))
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			return r.Log(args[0], strings.Join(args[1:], " "))
		},
	}
}

func newPanelCmd(g *globals) *cobra.Command {
	var (
		title string
		color string
	)

	cmd := &cobra.Command{
		Use:   "panel TEXT",
		Short: MsgPanelShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			border, err := parseColor(color)
			if err != nil {
				return err
			}
			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			return r.Panel(args[0], title, border)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", MsgFlagTitle)
	cmd.Flags().StringVar(&color, "color", string(style.Blue), MsgFlagColor)
	return cmd
}

func newRuleCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "rule [TITLE]",
		Short: MsgRuleShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			title := ""
			if len(args) == 1 {
				title = args[0]
			}
			return r.Rule(title)
		},
	}
}

func newMarkdownCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "md FILE",
		Short: MsgMarkdownShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			return r.Markdown(string(src))
		},
	}
}

func newCodeCmd(g *globals) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "code FILE",
		Short: MsgCodeShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			if lang == "" {
				lang = strings.TrimPrefix(filepath.Ext(args[0]), ".")
			}
			return r.Code(string(src), lang, filepath.Base(args[0]))
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", MsgFlagLang)
	return cmd
}

func newAskCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:       "ask KIND QUESTION [CHOICES...]",
		Short:     MsgAskShort,
		Long:      MsgAskLong,
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: []string{"text", "yesno", "choice"},
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			a := prompt.Auto(cmd.InOrStdin(), cmd.OutOrStdout(), r)
			ctx := cmd.Context()
			kind, question := args[0], args[1]

			var answer string
			switch kind {
			case "text":
				answer, err = a.AskTextContext(ctx, question)
			case "yesno":
				var ok bool
				ok, err = a.AskYesNoContext(ctx, question)
				answer = "no"
				if ok {
					answer = "yes"
				}
			case "choice":
				if len(args) < 3 {
					return errors.New(errors.ErrInvalidInput, MsgErrNoChoices)
				}
				answer, err = a.AskChoiceContext(ctx, question, args[2:])
			default:
				return errors.Newf(errors.ErrInvalidInput, MsgErrUnknownKind, kind).
					WithDetail("kind", kind)
			}
			if err != nil {
				return err
			}

			log.Debug().Str("kind", kind).Str("answer", answer).Msg("Question answered")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), answer)
			return err
		},
	}
}

func newConfigCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			out, err := config.Generate(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(shine completion bash)

Zsh:
  $ shine completion zsh > "${fpath[1]}/_shine"

Fish:
  $ shine completion fish | source

PowerShell:
  PS> shine completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// readInput reads path, or the command's stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileRead, MsgErrReadInput, "stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, MsgErrReadInput, path).
			WithDetail("path", path)
	}
	return data, nil
}

func parseColor(s string) (style.Color, error) {
	c, ok := style.ParseColor(s)
	if ok {
		return c, nil
	}
	names := make([]string, 0, len(style.Colors()))
	for _, known := range style.Colors() {
		names = append(names, string(known))
	}
	msg := fmt.Sprintf(MsgErrUnknownColor, s)
	if hint := style.Suggest(s, names); hint != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", hint)
	}
	return "", errors.New(errors.ErrInvalidInput, msg).WithDetail("color", s)
}
