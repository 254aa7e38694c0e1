// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"sort"

	"github.com/shayne/yargs"
)

type CommandInfo struct {
	Name        string
	Description string
	Usage       string
	Examples    []string
	Hidden      bool
	Aliases     []string
}

const (
	CommandParse   = "parse"
	CommandCheck   = "check"
	CommandPack    = "pack"
	CommandVersion = "version"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatEnv  = "env"
)

type ParseCmdFlags struct {
	Manifest  string
	SkipFirst bool
	Line      string
	Format    string
	NoColor   bool
	EnvFile   string
}

type CheckFlags struct {
	Manifests []string
	Format    string
	NoColor   bool
}

type PackFlags struct {
	Encoding string
}

type VersionFlags struct {
	JSON bool
}

type parseCmdFlagsParsed struct {
	Manifest  string `flag:"manifest" short:"m" help:"Manifest file (.toml, .yaml or .yml)"`
	SkipFirst bool   `flag:"skip-first" help:"Ignore the first token of the command line"`
	Line      string `flag:"line" help:"Raw command line to parse instead of the arguments after --"`
	Format    string `flag:"format" short:"f" default:"text" help:"Output format: text, json, yaml or env"`
	NoColor   bool   `flag:"no-color" help:"Disable colored output"`
	EnvFile   string `flag:"env-file" help:"Also write the values as an env file"`
}

type checkFlagsParsed struct {
	Manifests []string `flag:"manifest" short:"m" help:"Manifest file; repeat to check several"`
	Format    string   `flag:"format" short:"f" default:"text" help:"Output format: text, json or yaml"`
	NoColor   bool     `flag:"no-color" help:"Disable colored output"`
}

type packFlagsParsed struct {
	Encoding string `flag:"encoding" short:"e" default:"zstd" help:"Compression: zstd or gzip"`
}

type versionFlagsParsed struct {
	JSON bool `flag:"json"`
}

var commandInfos = map[string]CommandInfo{
	CommandParse: {
		Name:        CommandParse,
		Description: "Parse a command line against a manifest and print the values",
		Usage:       "--manifest FILE [--format text|json|yaml|env] [-- TOKENS...]",
		Examples: []string{
			"scmd parse -m tool.toml -- input.txt -verbose -out result.txt",
			`scmd parse -m tool.yaml --line "tool.exe @args.rsp" --skip-first --format json`,
		},
		Aliases: []string{"p"},
	},
	CommandCheck: {
		Name:        CommandCheck,
		Description: "Validate manifests and list their definitions",
		Usage:       "--manifest FILE [--manifest FILE...] [--format text|json|yaml]",
		Examples:    []string{"scmd check -m tool.toml", "scmd check -m a.toml -m b.yaml --format json"},
	},
	CommandPack: {
		Name:        CommandPack,
		Description: "Compress a response file with zstd or gzip",
		Usage:       "[--encoding zstd|gzip] SRC DST",
		Examples:    []string{"scmd pack args.txt args.rsp"},
	},
	CommandVersion: {
		Name:        CommandVersion,
		Description: "Print the scmd version",
		Usage:       "[--json]",
	},
}

func CommandNames() []string {
	names := make([]string, 0, len(commandInfos))
	for name := range commandInfos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func CommandInfos() map[string]CommandInfo {
	return commandInfos
}

// HelpConfig returns the help metadata for the scmd command tree.
func HelpConfig() yargs.HelpConfig {
	subcommands := make(map[string]yargs.SubCommandInfo, len(commandInfos))
	for name, info := range commandInfos {
		subcommands[name] = toSubCommandInfo(name, info)
	}
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "scmd",
			Description: "Parse command lines against declarative argument manifests.",
			Examples: []string{
				"scmd check -m tool.toml",
				"scmd parse -m tool.toml -- input.txt -v",
			},
		},
		SubCommands: subcommands,
	}
}

func toSubCommandInfo(name string, info CommandInfo) yargs.SubCommandInfo {
	return yargs.SubCommandInfo{
		Name:        name,
		Description: info.Description,
		Usage:       info.Usage,
		Examples:    info.Examples,
		Hidden:      info.Hidden,
		Aliases:     info.Aliases,
	}
}

// ParseParseCmd parses the flags of the parse command. Arguments after "--"
// are returned untouched so they can carry their own dashes.
func ParseParseCmd(args []string) (ParseCmdFlags, []string, error) {
	parseArgs, extraArgs := splitArgsAtDoubleDash(args)
	parsed, err := parseFlags[parseCmdFlagsParsed](parseArgs)
	if err != nil {
		return ParseCmdFlags{}, nil, err
	}
	flags := ParseCmdFlags{
		Manifest:  parsed.Flags.Manifest,
		SkipFirst: parsed.Flags.SkipFirst,
		Line:      parsed.Flags.Line,
		Format:    parsed.Flags.Format,
		NoColor:   parsed.Flags.NoColor,
		EnvFile:   parsed.Flags.EnvFile,
	}
	if err := requireManifest(CommandParse, flags.Manifest); err != nil {
		return ParseCmdFlags{}, nil, err
	}
	if err := checkFormat(flags.Format, FormatText, FormatJSON, FormatYAML, FormatEnv); err != nil {
		return ParseCmdFlags{}, nil, err
	}
	if flags.Line != "" && len(extraArgs) > 0 {
		return ParseCmdFlags{}, nil, fmt.Errorf("--line cannot be combined with arguments after --")
	}
	if stray := withoutCommand(CommandParse, parsed.Args); len(stray) > 0 {
		return ParseCmdFlags{}, nil, fmt.Errorf("unexpected argument %q; pass command line tokens after --", stray[0])
	}
	return flags, extraArgs, nil
}

func ParseCheck(args []string) (CheckFlags, []string, error) {
	parseArgs, extraArgs := splitArgsAtDoubleDash(args)
	parsed, err := parseFlags[checkFlagsParsed](parseArgs)
	if err != nil {
		return CheckFlags{}, nil, err
	}
	flags := CheckFlags{
		Manifests: parsed.Flags.Manifests,
		Format:    parsed.Flags.Format,
		NoColor:   parsed.Flags.NoColor,
	}
	if len(flags.Manifests) == 0 {
		return CheckFlags{}, nil, requireManifest(CommandCheck, "")
	}
	if err := checkFormat(flags.Format, FormatText, FormatJSON, FormatYAML); err != nil {
		return CheckFlags{}, nil, err
	}
	argsOut := append(withoutCommand(CommandCheck, parsed.Args), extraArgs...)
	return flags, argsOut, nil
}

func ParsePack(args []string) (PackFlags, []string, error) {
	parseArgs, extraArgs := splitArgsAtDoubleDash(args)
	parsed, err := parseFlags[packFlagsParsed](parseArgs)
	if err != nil {
		return PackFlags{}, nil, err
	}
	flags := PackFlags{Encoding: parsed.Flags.Encoding}
	switch flags.Encoding {
	case "zstd", "gzip":
	default:
		return PackFlags{}, nil, fmt.Errorf("unsupported encoding %q (want zstd or gzip)", flags.Encoding)
	}
	argsOut := append(withoutCommand(CommandPack, parsed.Args), extraArgs...)
	return flags, argsOut, nil
}

func ParseVersion(args []string) (VersionFlags, []string, error) {
	parseArgs, extraArgs := splitArgsAtDoubleDash(args)
	parsed, err := parseFlags[versionFlagsParsed](parseArgs)
	if err != nil {
		return VersionFlags{}, nil, err
	}
	flags := VersionFlags{JSON: parsed.Flags.JSON}
	argsOut := append(withoutCommand(CommandVersion, parsed.Args), extraArgs...)
	return flags, argsOut, nil
}

type parsedFlags[T any] struct {
	Flags  T
	Args   []string
	Parser *yargs.Parser
}

func parseFlags[T any](args []string) (parsedFlags[T], error) {
	result, err := yargs.ParseFlags[T](args)
	if err != nil {
		return parsedFlags[T]{}, err
	}
	argsOut := append([]string{}, result.Args...)
	if len(result.RemainingArgs) > 0 {
		argsOut = append(argsOut, result.RemainingArgs...)
	}
	return parsedFlags[T]{Flags: result.Flags, Args: argsOut, Parser: result.Parser}, nil
}

// withoutCommand drops the command name handlers receive as their first
// positional argument.
func withoutCommand(name string, args []string) []string {
	if len(args) > 0 && args[0] == name {
		return args[1:]
	}
	return args
}

func splitArgsAtDoubleDash(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == "--" {
			if i+1 < len(args) {
				return args[:i], args[i+1:]
			}
			return args[:i], nil
		}
	}
	return args, nil
}

func requireManifest(subcmd, path string) error {
	if path == "" {
		return fmt.Errorf("'%s' requires --manifest", subcmd)
	}
	return nil
}

func checkFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q", format)
}

func RequireArgsAtLeast(subcmd string, args []string, count int) error {
	if len(args) < count {
		return fmt.Errorf("'%s' requires at least %d argument(s), got %d", subcmd, count, len(args))
	}
	return nil
}
