// Package mcdcli implements the mcd command: render, validate, fmt, themes and the
// watch mode live preview.
package mcdcli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cdr.dev/slog"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"

	"oss.terrastruct.com/util-go/go2"
	"oss.terrastruct.com/util-go/xmain"

	"oss.terrastruct.com/mcd/lib/background"
	"oss.terrastruct.com/mcd/lib/log"
	"oss.terrastruct.com/mcd/lib/textmeasure"
	"oss.terrastruct.com/mcd/lib/version"
	"oss.terrastruct.com/mcd/mcdlayout"
	"oss.terrastruct.com/mcd/mcdlib"
	"oss.terrastruct.com/mcd/mcdrenderers/mcdsvg"
	"oss.terrastruct.com/mcd/mcdtarget"
	"oss.terrastruct.com/mcd/mcdthemes"
	"oss.terrastruct.com/mcd/mcdthemes/mcdthemescatalog"
)

func Run(ctx context.Context, ms *xmain.State) (err error) {
	ctx = log.With(ctx, log.Make(ms.Stderr, false))
	// These should be kept up-to-date with help.go
	watchFlag, err := ms.Opts.Bool("MCD_WATCH", "watch", "w", false, "watch for changes to input and live reload. Use $HOST and $PORT to specify the listening address.\n(default localhost:0, which will open on a randomly available local port).")
	if err != nil {
		return err
	}
	hostFlag := ms.Opts.String("HOST", "host", "h", "localhost", "host listening address when used with watch")
	portFlag := ms.Opts.String("PORT", "port", "p", "0", "port listening address when used with watch")
	debugFlag, err := ms.Opts.Bool("DEBUG", "debug", "d", false, "print debug logs.")
	if err != nil {
		ms.Log.Warn.Printf("Invalid DEBUG flag value ignored")
		debugFlag = go2.Pointer(false)
	}
	themeFlag, err := ms.Opts.Int64("MCD_THEME", "theme", "t", 0, "the diagram theme ID")
	if err != nil {
		return err
	}
	darkThemeFlag, err := ms.Opts.Int64("MCD_DARK_THEME", "dark-theme", "", -1, "the theme to use when the viewer's browser is in dark mode. When left unset --theme is used for both light and dark mode.")
	if err != nil {
		return err
	}
	padFlag, err := ms.Opts.Int64("MCD_PAD", "pad", "", mcdsvg.DEFAULT_PADDING, "pixels padded around the rendered diagram")
	if err != nil {
		return err
	}
	defaults := mcdlayout.DefaultConfig()
	fanoutSpacingFlag, err := ms.Opts.Float64("MCD_FANOUT_SPACING", "fanout-spacing", "", defaults.FanoutSpacing, "distance between parallel associations joining the same two entities")
	if err != nil {
		return err
	}
	selfLoopSpacingFlag, err := ms.Opts.Float64("MCD_SELF_LOOP_SPACING", "self-loop-spacing", "", defaults.SelfLoopSpacing, "how much further out each extra reflexive association on an entity is drawn")
	if err != nil {
		return err
	}
	fontMetricsFlag, err := ms.Opts.Bool("MCD_FONT_METRICS", "font-metrics", "", true, "measure text with the embedded fonts. When false, a fixed width per character is used, which is faster and does not depend on font files.")
	if err != nil {
		return err
	}
	timeoutFlag, err := ms.Opts.Int64("MCD_TIMEOUT", "timeout", "", 120, "the maximum number of seconds that mcd runs for before timing out and exiting")
	if err != nil {
		return err
	}
	versionFlag, err := ms.Opts.Bool("", "version", "v", false, "get the version")
	if err != nil {
		return err
	}
	browserFlag := ms.Opts.String("BROWSER", "browser", "", "", "browser executable that watch opens. Setting to 0 opens no browser.")
	checkFlag, err := ms.Opts.Bool("MCD_CHECK", "check", "", false, "check that the specified files are formatted correctly.")
	if err != nil {
		return err
	}
	noXMLTagFlag, err := ms.Opts.Bool("MCD_NO_XML_TAG", "no-xml-tag", "", false, "omit XML tag (<?xml ...?>) from output SVG files. Useful when generating SVGs for direct HTML embedding")
	if err != nil {
		return err
	}
	omitVersionFlag, err := ms.Opts.Bool("OMIT_VERSION", "omit-version", "", false, "omit mcd version from generated image")
	if err != nil {
		return err
	}

	err = ms.Opts.Flags.Parse(ms.Opts.Args)
	if !errors.Is(err, pflag.ErrHelp) && err != nil {
		return xmain.UsageErrorf("failed to parse flags: %v", err)
	}

	if errors.Is(err, pflag.ErrHelp) {
		help(ms)
		return nil
	}

	if *debugFlag {
		ctx = log.Leveled(ctx, slog.LevelDebug)
		ms.Env.Setenv("DEBUG", "1")
	}

	if len(ms.Opts.Flags.Args()) > 0 {
		switch ms.Opts.Flags.Arg(0) {
		case "themes":
			themesCmd(ctx, ms)
			return nil
		case "fmt":
			return fmtCmd(ctx, ms, *checkFlag)
		case "validate":
			return validateCmd(ctx, ms)
		case "version":
			if len(ms.Opts.Flags.Args()) > 1 {
				return xmain.UsageErrorf("version subcommand accepts no arguments")
			}
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
	}

	if *browserFlag != "" {
		ms.Env.Setenv("BROWSER", *browserFlag)
	}

	var inputPath string
	var outputPath string

	if len(ms.Opts.Flags.Args()) == 0 {
		if versionFlag != nil && *versionFlag {
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
		help(ms)
		return nil
	} else if len(ms.Opts.Flags.Args()) >= 3 {
		return xmain.UsageErrorf("too many arguments passed")
	}

	inputPath = ms.Opts.Flags.Arg(0)
	if len(ms.Opts.Flags.Args()) >= 2 {
		outputPath = ms.Opts.Flags.Arg(1)
	} else {
		if inputPath == "-" {
			outputPath = "-"
		} else {
			outputPath = renameExt(inputPath, ".svg")
		}
	}
	if inputPath != "-" {
		inputPath = ms.AbsPath(inputPath)
		d, err := os.Stat(inputPath)
		if err == nil && d.IsDir() {
			return xmain.UsageErrorf("%s is a directory, pass the diagram file to render", ms.HumanPath(inputPath))
		}
	}
	outputFormat := getExportExtension(outputPath)
	if outputPath != "-" {
		outputPath = ms.AbsPath(outputPath)
		if outputPath == inputPath {
			return xmain.UsageErrorf("output path %s would overwrite the input", ms.HumanPath(outputPath))
		}
	}

	match := mcdthemescatalog.Find(*themeFlag)
	if match == (mcdthemes.Theme{}) {
		return xmain.UsageErrorf("-t[heme] could not be found. The available options are:\n%s\nYou provided: %d", mcdthemescatalog.CLIString(), *themeFlag)
	}
	ms.Log.Debug.Printf("using theme %s (ID: %d)", match.Name, *themeFlag)

	// If flag is not explicitly set by user, set to nil.
	flagSet := make(map[string]struct{})
	ms.Opts.Flags.Visit(func(f *pflag.Flag) {
		flagSet[f.Name] = struct{}{}
	})
	if ms.Env.Getenv("MCD_THEME") == "" {
		if _, ok := flagSet["theme"]; !ok {
			themeFlag = nil
		}
	}
	if ms.Env.Getenv("MCD_PAD") == "" {
		if _, ok := flagSet["pad"]; !ok {
			padFlag = nil
		}
	}

	if *darkThemeFlag == -1 {
		darkThemeFlag = nil
	}
	if darkThemeFlag != nil {
		match = mcdthemescatalog.Find(*darkThemeFlag)
		if match == (mcdthemes.Theme{}) {
			return xmain.UsageErrorf("--dark-theme could not be found. The available options are:\n%s\nYou provided: %d", mcdthemescatalog.CLIString(), *darkThemeFlag)
		}
		ms.Log.Debug.Printf("using dark theme %s (ID: %d)", match.Name, *darkThemeFlag)
	}
	if !outputFormat.supportsDarkTheme() && darkThemeFlag != nil {
		ms.Log.Warn.Printf("--dark-theme cannot be used while exporting to another format other than .svg")
		darkThemeFlag = nil
	}

	layoutConfig := mcdlayout.DefaultConfig()
	layoutConfig.FanoutSpacing = *fanoutSpacingFlag
	layoutConfig.SelfLoopSpacing = *selfLoopSpacingFlag

	compileOpts := &mcdlib.CompileOptions{
		Layout:      layoutConfig,
		ThemeID:     themeFlag,
		DarkThemeID: darkThemeFlag,
	}
	if !*fontMetricsFlag {
		compileOpts.Ruler = textmeasure.NewFallbackRuler()
	}

	renderOpts := mcdsvg.RenderOpts{
		Pad:         padFlag,
		ThemeID:     themeFlag,
		DarkThemeID: darkThemeFlag,
		NoXMLTag:    noXMLTagFlag,
		OmitVersion: omitVersionFlag,
	}

	if *watchFlag {
		if inputPath == "-" {
			return xmain.UsageErrorf("-w[atch] cannot be combined with reading input from stdin")
		}
		w, err := newWatcher(ctx, ms, watcherOpts{
			compileOpts:  compileOpts,
			renderOpts:   renderOpts,
			host:         *hostFlag,
			port:         *portFlag,
			inputPath:    inputPath,
			outputPath:   outputPath,
			outputFormat: outputFormat,
		})
		if err != nil {
			return err
		}
		return w.run()
	}

	ctx, cancel := log.WithTimeout(ctx, time.Duration(*timeoutFlag)*time.Second)
	defer cancel()

	_, err = compile(ctx, ms, compileOpts, renderOpts, inputPath, outputPath, outputFormat)
	if err != nil {
		return fmt.Errorf("failed to compile %s: %w", ms.HumanPath(inputPath), err)
	}
	return nil
}

// compiled is one successful run of the pipeline over the input file.
type compiled struct {
	svg  []byte
	plan *mcdtarget.Diagram
	// problems are the referential problems of the input. They do not fail the compile:
	// the legs they affect are skipped.
	problems []error
}

// compile renders inputPath and writes the result to outputPath in the requested format.
// The SVG is always part of the result so watch mode can preview a JSON export too.
func compile(ctx context.Context, ms *xmain.State, opts *mcdlib.CompileOptions, renderOpts mcdsvg.RenderOpts, inputPath, outputPath string, ext exportExtension) (*compiled, error) {
	start := time.Now()
	input, err := ms.ReadPath(inputPath)
	if err != nil {
		return nil, err
	}

	cancel := background.Repeat(func() {
		ms.Log.Info.Printf("compiling & laying out diagram...")
	}, time.Second*5)
	defer cancel()

	diagram, g, err := mcdlib.Compile(ctx, input, opts)
	if err != nil {
		return nil, err
	}
	svg, err := mcdlib.RenderDiagram(diagram, &renderOpts)
	if err != nil {
		return nil, err
	}
	cancel()

	out := svg
	if ext == JSON {
		out, err = diagram.Bytes()
		if err != nil {
			return nil, err
		}
	}

	if outputPath != "-" {
		err = os.MkdirAll(filepath.Dir(outputPath), 0755)
		if err != nil {
			return nil, err
		}
	}
	err = ms.WritePath(outputPath, out)
	if err != nil {
		return nil, err
	}

	if outputPath != "-" {
		dur := time.Since(start)
		ms.Log.Success.Printf("successfully compiled %s to %s in %s", ms.HumanPath(inputPath), ms.HumanPath(outputPath), dur)
	}
	return &compiled{
		svg:      svg,
		plan:     diagram,
		problems: multierr.Errors(g.Validate()),
	}, nil
}
