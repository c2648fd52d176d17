package mcdcli

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"oss.terrastruct.com/util-go/xdefer"
	"oss.terrastruct.com/util-go/xmain"

	"oss.terrastruct.com/mcd/lib/log"
	"oss.terrastruct.com/mcd/mcdgraph"
)

// fmtCmd rewrites each diagram file in the form mcdgraph.Marshal produces. With check,
// files are only reported.
func fmtCmd(ctx context.Context, ms *xmain.State, check bool) (err error) {
	defer xdefer.Errorf(&err, "failed to fmt")

	ms.Opts = xmain.NewOpts(ms.Env, ms.Opts.Flags.Args()[1:])
	if len(ms.Opts.Args) == 0 {
		return xmain.UsageErrorf("fmt must be passed at least one file to be formatted")
	}

	var unformatted []string
	for _, inputPath := range ms.Opts.Args {
		if inputPath != "-" {
			inputPath = ms.AbsPath(inputPath)
		}
		output, changed, err := formatDiagram(ms, inputPath)
		if err != nil {
			return err
		}
		if !changed {
			continue
		}
		if check {
			log.Warn(ctx, ms.HumanPath(inputPath))
			unformatted = append(unformatted, ms.HumanPath(inputPath))
			continue
		}
		err = ms.WritePath(inputPath, output)
		if err != nil {
			return err
		}
		if inputPath != "-" {
			ms.Log.Info.Printf("formatted %s", ms.HumanPath(inputPath))
		}
	}

	switch len(unformatted) {
	case 0:
		return nil
	case 1:
		return xmain.ExitErrorf(1, "found 1 unformatted file. Run mcd fmt to fix.")
	default:
		return xmain.ExitErrorf(1, "found %d unformatted files. Run mcd fmt to fix.\n%s", len(unformatted), strings.Join(unformatted, "\n"))
	}
}

// formatDiagram returns the canonical serialization of the diagram at inputPath and
// whether it differs from what is on disk.
func formatDiagram(ms *xmain.State, inputPath string) ([]byte, bool, error) {
	input, err := ms.ReadPath(inputPath)
	if err != nil {
		return nil, false, err
	}
	d, err := mcdgraph.Parse(input)
	if err != nil {
		return nil, false, fmt.Errorf("%s is not an MCD diagram: %w", ms.HumanPath(inputPath), err)
	}
	output, err := mcdgraph.Marshal(d)
	if err != nil {
		return nil, false, err
	}
	return output, !bytes.Equal(output, input), nil
}
