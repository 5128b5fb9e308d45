// Package topics adds file-based help topics to a cobra command tree.
//
// Topics are markdown (.md) or markup (.txt) files read from an fs.FS,
// usually an embedded directory. "help topics" lists them and
// "help <topic>" renders one; anything else falls through to cobra's help.
package topics

import (
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/shine/pkg/errors"
	"github.com/arthur-debert/shine/pkg/logging"
	"github.com/arthur-debert/shine/pkg/render"
)

// optionPrefix marks topics documenting a flag.
const optionPrefix = "option-"

// DefaultExtensions are the file types loaded as topics.
var DefaultExtensions = []string{".md", ".txt"}

// Topic is one help document.
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Markdown reports whether the topic is rendered as markdown.
func (t *Topic) Markdown() bool {
	return path.Ext(t.Path) == ".md"
}

// RendererFunc builds the renderer a help command writes through.
type RendererFunc func(cmd *cobra.Command) (*render.Renderer, error)

// Manager holds the loaded topics.
type Manager struct {
	topics map[string]*Topic
}

// Load reads every file in fsys with one of extensions (DefaultExtensions
// when none are given). The topic name is the file name without extension.
func Load(fsys fs.FS, extensions ...string) (*Manager, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	m := &Manager{topics: make(map[string]*Topic)}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := path.Ext(p)
		if !contains(extensions, ext) {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{Name: name, Path: p, Content: string(content)}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileRead, "failed to scan help topics")
	}

	logger := logging.GetLogger("topics")
	logger.Debug().Int("count", len(m.topics)).Msg("Loaded help topics")
	return m, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Get finds a topic by name. Flag spellings ("--format", "format") also
// find the matching option topic.
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	if t, ok := m.topics[name]; ok {
		return t, true
	}
	t, ok := m.topics[optionPrefix+name]
	return t, ok
}

// Names returns the sorted topic names.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Show renders one topic: markdown through glamour, text as inline markup.
func (m *Manager) Show(r *render.Renderer, t *Topic) error {
	if t.Markdown() {
		return r.Markdown(t.Content)
	}
	return r.Print(strings.TrimRight(t.Content, "\n"))
}

// List renders the topic index, general topics first, then flag topics.
func (m *Manager) List(r *render.Renderer, appName string) error {
	if len(m.topics) == 0 {
		return r.Info("No help topics available.")
	}

	var general, options []any
	for _, name := range m.Names() {
		if strings.HasPrefix(name, optionPrefix) {
			options = append(options, "--"+strings.TrimPrefix(name, optionPrefix))
		} else {
			general = append(general, name)
		}
	}

	if err := r.Header("Available help topics:"); err != nil {
		return err
	}
	if len(general) > 0 {
		if _, err := r.List(general, "General topics", render.Numbered(false)); err != nil {
			return err
		}
	}
	if len(options) > 0 {
		if _, err := r.List(options, "Option topics", render.Numbered(false)); err != nil {
			return err
		}
	}
	return r.Print("Use '[code]" + appName + " help <topic>[/code]' to read about a specific topic.")
}

// Install replaces root's help command with one that also knows topics.
func (m *Manager) Install(root *cobra.Command, newRenderer RendererFunc) {
	originalHelp := root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + root.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + root.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				originalHelp(root, nil)
				return nil
			}
			if args[0] == "topics" {
				r, err := newRenderer(cmd)
				if err != nil {
					return err
				}
				return m.List(r, root.Name())
			}
			if t, ok := m.Get(args[0]); ok {
				r, err := newRenderer(cmd)
				if err != nil {
					return err
				}
				return m.Show(r, t)
			}

			target, _, err := root.Find(args)
			if err != nil || target == nil {
				target = root
			}
			originalHelp(target, args)
			return nil
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.SetHelpCommand(helpCmd)
}
