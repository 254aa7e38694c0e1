// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command scmd parses command lines against declarative argument manifests.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"

	"github.com/fatih/color"
	"github.com/shayne/yargs"
	"github.com/yeetrun/scmd/pkg/cli"
	"github.com/yeetrun/scmd/pkg/env"
	"github.com/yeetrun/scmd/pkg/manifest"
	"github.com/yeetrun/scmd/pkg/respfile"
	"github.com/yeetrun/scmd/pkg/scmd"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// version is set at link time.
var version = "dev"

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	isTerminalFn = term.IsTerminal
	logger       = slog.New(slog.DiscardHandler)
)

// errReported means the failure has already been printed.
var errReported = errors.New("parse failed")

type globalFlagsParsed struct {
	Verbose bool `flag:"verbose" short:"v" help:"Log parser decisions to stderr"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		if !errors.Is(err, errReported) {
			printCLIError(stderr, err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	head, tail, hasTail := cutDoubleDash(args)
	globalFlags, remaining, err := parseGlobalFlags(head)
	if err != nil {
		return err
	}
	if globalFlags.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	// Tokens after "--" belong to the parsed command line, so they are kept
	// away from help and flag detection.
	withTail := func(h yargs.SubcommandHandler) yargs.SubcommandHandler {
		return func(ctx context.Context, args []string) error {
			if hasTail {
				args = slices.Concat(args, []string{"--"}, tail)
			}
			return h(ctx, args)
		}
	}
	handlers := map[string]yargs.SubcommandHandler{
		cli.CommandParse:   withTail(handleParse),
		cli.CommandCheck:   withTail(handleCheck),
		cli.CommandPack:    withTail(handlePack),
		cli.CommandVersion: withTail(handleVersion),
	}
	return yargs.RunSubcommands(ctx, remaining, cli.HelpConfig(), globalFlagsParsed{}, handlers)
}

func cutDoubleDash(args []string) (head, tail []string, found bool) {
	for i, arg := range args {
		if arg == "--" {
			return args[:i], args[i+1:], true
		}
	}
	return args, nil, false
}

func printCLIError(w io.Writer, err error) {
	if err == nil {
		return
	}
	if f, ok := w.(*os.File); ok && isTerminalFn(int(f.Fd())) {
		c := color.New(color.FgRed)
		c.EnableColor()
		c.Fprintln(w, err)
		return
	}
	fmt.Fprintln(w, err)
}

func handleParse(_ context.Context, args []string) error {
	flags, tokens, err := cli.ParseParseCmd(args)
	if err != nil {
		return err
	}
	m, err := manifest.Load(flags.Manifest)
	if err != nil {
		return err
	}
	r := scmd.New(scmd.WithLogger(logger), scmd.WithFileSystem(respfile.OS{}))
	defer r.Close()
	b, err := m.Register(r)
	if err != nil {
		return err
	}

	line := flags.Line
	if line == "" {
		line = scmd.JoinArgs(tokens)
	}
	logger.Debug("processing command line", "line", line, "skipFirst", flags.SkipFirst)

	rep := report{}
	ok := r.Process(line, flags.SkipFirst,
		func(tok string) bool {
			rep.Extra = append(rep.Extra, tok)
			return true
		},
		func(e *scmd.CmdError) {
			rep.Errors = append(rep.Errors, e.Error())
		},
	)
	for _, rej := range b.Rejected {
		rep.Errors = append(rep.Errors, rej.Error())
	}
	rep.Values = b.Results()

	if err := writeReport(stdout, flags.Format, colorizer(flags.NoColor), rep); err != nil {
		return err
	}
	if flags.EnvFile != "" {
		if err := env.Write(flags.EnvFile, envVars(rep)); err != nil {
			return err
		}
	}
	if !ok || len(rep.Errors) > 0 {
		for _, msg := range rep.Errors {
			printCLIError(stderr, errors.New(msg))
		}
		if len(rep.Errors) == 0 {
			printCLIError(stderr, errors.New("parse stopped"))
		}
		return errReported
	}
	return nil
}

func handleCheck(_ context.Context, args []string) error {
	flags, _, err := cli.ParseCheck(args)
	if err != nil {
		return err
	}
	reports := make([]checkReport, len(flags.Manifests))
	var wg errgroup.Group
	for i, path := range flags.Manifests {
		wg.Go(func() error {
			values, err := checkManifest(path)
			if err != nil {
				return err
			}
			reports[i] = checkReport{Manifest: path, Values: values}
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return err
	}
	return writeCheck(stdout, flags.Format, colorizer(flags.NoColor), reports)
}

// checkManifest loads path and registers it with a fresh registry.
func checkManifest(path string) ([]manifest.Result, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	r := scmd.New(scmd.WithLogger(logger.With("manifest", path)))
	defer r.Close()
	b, err := m.Register(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b.Results(), nil
}

func handlePack(_ context.Context, args []string) error {
	flags, files, err := cli.ParsePack(args)
	if err != nil {
		return err
	}
	if err := cli.RequireArgsAtLeast(cli.CommandPack, files, 2); err != nil {
		return err
	}
	src, dst := files[0], files[1]
	text, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if enc := respfile.Encoding(text); enc != "" {
		return fmt.Errorf("%s is already %s compressed", src, enc)
	}
	data, err := respfile.Encode(text, flags.Encoding)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return err
	}
	logger.Debug("packed response file", "src", src, "dst", dst, "encoding", flags.Encoding, "in", len(text), "out", len(data))
	return nil
}

func handleVersion(_ context.Context, args []string) error {
	flags, _, err := cli.ParseVersion(args)
	if err != nil {
		return err
	}
	if flags.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Version string `json:"version"`
			Go      string `json:"go"`
		}{version, runtime.Version()})
	}
	_, err = fmt.Fprintf(stdout, "scmd %s (%s)\n", version, runtime.Version())
	return err
}
