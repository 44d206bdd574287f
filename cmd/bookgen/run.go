package main

import (
	"context"
	"fmt"

	bookgen "github.com/alnah/go-bookgen"
	"github.com/alnah/go-bookgen/internal/config"
)

// run dispatches subcommands and executes the generation pipeline.
// Stage failures are printed, not reflected in the exit code; only
// setup errors and HTML assembly failure exit non-zero.
func run(args []string, env *Environment) int {
	if len(args) > 1 {
		switch args[1] {
		case "doctor":
			return runDoctorCmd(args[2:], env)
		case "version":
			fmt.Fprintln(env.Stdout, Version)
			return ExitSuccess
		}
	}

	flags, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	cfg := config.Default()
	if flags.config != "" {
		cfg, err = config.Load(flags.config)
		if err != nil {
			fmt.Fprintln(env.Stderr, err)
			return exitCodeFor(err)
		}
	}

	opts := []bookgen.Option{
		bookgen.WithTimeout(flags.timeout),
		bookgen.WithClock(env.Now),
	}
	if flags.quiet {
		opts = append(opts, bookgen.WithWarnf(func(string, ...any) {}))
	} else {
		opts = append(opts, bookgen.WithWarnf(func(format string, args ...any) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	}
	if flags.validate {
		opts = append(opts, bookgen.WithValidation())
	}

	gen, err := bookgen.NewGenerator(bookgen.Book{
		Meta: bookgen.BookMeta{
			Title:    cfg.Book.Title,
			Subtitle: cfg.Book.Subtitle,
			Author:   cfg.Book.Author,
		},
		Fonts: bookgen.Fonts{
			Main: cfg.Fonts.Main,
			Mono: cfg.Fonts.Mono,
			Size: cfg.Fonts.Size,
		},
		CoverImage: cfg.Book.CoverImage,
		Chapters:   cfg.Chapters,
		DocsDir:    flags.docsDir,
		OutputDir:  flags.outputDir,
		BaseName:   cfg.Book.BaseName,
	}, opts...)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	defer func() { _ = gen.Close() }()

	ctx := context.Background()

	if flags.verbose {
		fmt.Fprintf(env.Stderr, "Generating %s (%d chapters)...\n", cfg.Book.Title, gen.Registry().Len())
	}

	switch flags.format {
	case "all":
		report, err := gen.GenerateAll(ctx)
		printStage(env, report.HTML)
		if err != nil {
			return exitCodeFor(err)
		}
		printStage(env, report.PDF)
		printStage(env, report.EPUB)
		fmt.Fprintln(env.Stdout, "\nEbook generation complete!")
	case "html":
		res := gen.GenerateHTML(ctx)
		printStage(env, res)
		if res.Err != nil {
			return exitCodeFor(res.Err)
		}
	case "pdf":
		printStage(env, gen.GeneratePDF(ctx))
	case "epub":
		printStage(env, gen.GenerateEPUB(ctx))
	}

	return ExitSuccess
}

// printStage reports one stage outcome on stdout, matching the
// check-mark progress lines of the generation run.
func printStage(env *Environment, res bookgen.StageResult) {
	label := formatLabel(res.Format)
	if res.Err != nil {
		fmt.Fprintf(env.Stdout, "✗ %s generation failed: %v\n", label, res.Err)
		return
	}
	if res.Backend != "" {
		fmt.Fprintf(env.Stdout, "✓ %s generated (%s): %s\n", label, res.Backend, res.Path)
		return
	}
	fmt.Fprintf(env.Stdout, "✓ %s generated: %s\n", label, res.Path)
}

// formatLabel uppercases the artifact format for display.
func formatLabel(format string) string {
	switch format {
	case "html":
		return "HTML"
	case "pdf":
		return "PDF"
	case "epub":
		return "EPUB"
	}
	return format
}
