package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"

	md2page "github.com/alnah/go-md2page"
	"github.com/alnah/go-md2page/internal/dateutil"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name       string
	Desc       string
	Flags      []flagDef
	TakesFiles bool
}

// completionMeta holds completion hints for flags.
// Names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   func() []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"theme":           {Values: md2page.Themes},
	"highlight-style": {Values: md2page.HighlightStyles},
	"date-format":     {Values: datePresetNames},
	"config":          {FileGlob: "*.yaml,*.yml"},
	"output":          {IsDir: true},
	"assets-dir":      {IsDir: true},
}

// datePresetNames returns the sorted date format presets.
func datePresetNames() []string {
	return slices.Sorted(maps.Keys(dateutil.DatePresets))
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet,
// enriched with flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case meta.Values != nil:
				fd.Type = flagEnum
				fd.Values = meta.Values()
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:       "convert",
			Desc:       "Convert markdown files to sanitized HTML",
			Flags:      extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{})),
			TakesFiles: true,
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
		{Name: "completion", Desc: "Generate shell completion script"},
	}
}

// GenerateCompletion writes a shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2page completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:  eval \"$(md2page completion bash)\"        # in ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:   eval \"$(md2page completion zsh)\"         # in ~/.zshrc")
	fmt.Fprintln(w, "  Fish:  md2page completion fish > ~/.config/fish/completions/md2page.fish")
}

// commandNames returns the space-separated command names.
func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

// shellQuote single-quotes s for sh-like shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# bash completion for md2page\n")
	b.WriteString("_md2page() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %s -- \"$cur\"))\n", shellQuote(commandNames(cmds)))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		if c.Name == "completion" {
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %s -- \"$cur\"))\n", shellQuote("bash zsh fish"))
			b.WriteString("        ;;\n")
			continue
		}
		if c.Name == "help" {
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %s -- \"$cur\"))\n", shellQuote(commandNames(cmds)))
			b.WriteString("        ;;\n")
			continue
		}

		b.WriteString("        case \"$prev\" in\n")
		var words []string
		for _, f := range c.Flags {
			names := "--" + f.Long
			words = append(words, "--"+f.Long)
			if f.Short != "" {
				names = "-" + f.Short + "|" + names
				words = append(words, "-"+f.Short)
			}
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, "        %s)\n            COMPREPLY=($(compgen -W %s -- \"$cur\"))\n            return\n            ;;\n",
					names, shellQuote(strings.Join(f.Values, " ")))
			case flagFile:
				fmt.Fprintf(&b, "        %s)\n            COMPREPLY=($(compgen -f -- \"$cur\"))\n            return\n            ;;\n", names)
			case flagDir:
				fmt.Fprintf(&b, "        %s)\n            COMPREPLY=($(compgen -d -- \"$cur\"))\n            return\n            ;;\n", names)
			case flagString, flagInt:
				fmt.Fprintf(&b, "        %s)\n            return\n            ;;\n", names)
			}
		}
		b.WriteString("        esac\n")
		fmt.Fprintf(&b, "        if [[ \"$cur\" == -* ]]; then\n            COMPREPLY=($(compgen -W %s -- \"$cur\"))\n",
			shellQuote(strings.Join(words, " ")))
		if c.TakesFiles {
			b.WriteString("        else\n            COMPREPLY=($(compgen -f -X '!*.@(md|markdown)' -- \"$cur\") $(compgen -d -- \"$cur\"))\n")
		}
		b.WriteString("        fi\n")
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _md2page md2page\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("#compdef md2page\n\n")
	b.WriteString("_md2page() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s\n", shellQuote(c.Name+":"+c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		switch c.Name {
		case "completion":
			b.WriteString("        _values 'shell' bash zsh fish\n")
		case "help":
			b.WriteString("        _describe 'command' commands\n")
		default:
			b.WriteString("        _arguments \\\n")
			for _, f := range c.Flags {
				fmt.Fprintf(&b, "            %s \\\n", shellQuote(zshSpec(f)))
			}
			if c.TakesFiles {
				b.WriteString("            '*:markdown file:_files -g \"*.(md|markdown)\"'\n")
			} else {
				b.WriteString("            \n")
			}
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _md2page md2page\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshSpec renders one _arguments specification for f.
func zshSpec(f flagDef) string {
	desc := strings.NewReplacer("[", "(", "]", ")", ":", " ").Replace(f.Desc)
	name := "--" + f.Long
	if f.Short != "" {
		name = "(-" + f.Short + " --" + f.Long + ")'{-" + f.Short + ",--" + f.Long + "}'"
	}

	var action string
	switch f.Type {
	case flagBool:
		return name + "[" + desc + "]"
	case flagEnum:
		action = ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = ":file:_files"
	case flagDir:
		action = ":directory:_files -/"
	case flagString, flagInt:
		action = ":value: "
	}
	return name + "[" + desc + "]" + action
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# fish completion for md2page\n")
	b.WriteString("complete -c md2page -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c md2page -n __fish_use_subcommand -a %s -d %s\n",
			c.Name, shellQuote(c.Desc))
	}
	b.WriteString("complete -c md2page -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'\n")
	fmt.Fprintf(&b, "complete -c md2page -n '__fish_seen_subcommand_from help' -a %s\n", shellQuote(commandNames(cmds)))

	for _, c := range cmds {
		cond := shellQuote("__fish_seen_subcommand_from " + c.Name)
		if c.TakesFiles {
			fmt.Fprintf(&b, "complete -c md2page -n %s -a '(__fish_complete_suffix .md .markdown)'\n", cond)
		}
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c md2page -n %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagEnum:
				line += " -x -a " + shellQuote(strings.Join(f.Values, " "))
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagString, flagInt:
				line += " -x"
			case flagBool:
			}
			line += " -d " + shellQuote(f.Desc)
			b.WriteString(line + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
