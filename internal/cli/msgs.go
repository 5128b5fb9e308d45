package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Styled terminal output for data and messages"
	MsgVersionShort    = "Print version information"
	MsgShowShort       = "Render JSON or YAML input"
	MsgShowLong        = "Show reads FILE (or stdin when FILE is - or missing) and renders it with the layout that fits its shape."
	MsgSayShort        = "Print a semantic message"
	MsgSayLong         = "Say prints TEXT with the glyph and colour of CATEGORY (info, success, warning, error, debug, progress). Other names use a neutral style."
	MsgPanelShort      = "Draw text inside a bordered panel"
	MsgRuleShort       = "Draw a horizontal rule"
	MsgMarkdownShort   = "Render a markdown file"
	MsgCodeShort       = "Show a source file with highlighting and line numbers"
	MsgAskShort        = "Ask a question and print the answer"
	MsgAskLong         = "Ask prompts on the terminal. KIND is text, yesno or choice; choice takes the allowed answers as extra arguments."
	MsgConfigShort     = "Print the effective configuration as TOML"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat    = "Output format (auto, term, text, json)"
	MsgFlagNoColor   = "Disable colour output"
	MsgFlagConfig    = "Config file (default is $XDG_CONFIG_HOME/shine/config.toml)"
	MsgFlagStyles    = "YAML file overriding the default styles"
	MsgFlagTitle     = "Title of the rendered block"
	MsgFlagYAML      = "Parse the input as YAML instead of JSON"
	MsgFlagMaxRows   = "Maximum table rows to show (0 uses the configured cap)"
	MsgFlagCellWidth = "Maximum table cell width (0 uses the configured cap)"
	MsgFlagColor     = "Border colour of the panel"
	MsgFlagLang      = "Language used for highlighting (default from the file extension)"

	// Version output
	MsgVersionFormat = "shine version %s\n"

	// Error messages
	MsgErrReadInput    = "failed to read %s"
	MsgErrUnknownKind  = "unknown question kind %q (want text, yesno or choice)"
	MsgErrNoChoices    = "choice questions need at least one choice"
	MsgErrUnknownColor = "unknown colour %q"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)
)
