package mcdcli

import (
	"context"

	"go.uber.org/multierr"

	"oss.terrastruct.com/util-go/xdefer"
	"oss.terrastruct.com/util-go/xmain"

	"oss.terrastruct.com/mcd/lib/log"
	"oss.terrastruct.com/mcd/mcdgraph"
)

func validateCmd(ctx context.Context, ms *xmain.State) (err error) {
	defer xdefer.Errorf(&err, "failed to validate")

	ms.Opts = xmain.NewOpts(ms.Env, ms.Opts.Flags.Args()[1:])
	if len(ms.Opts.Args) == 0 {
		return xmain.UsageErrorf("validate must be passed an input file to be validated")
	}

	inputPath := ms.Opts.Args[0]
	if inputPath != "-" {
		inputPath = ms.AbsPath(inputPath)
	}

	input, err := ms.ReadPath(inputPath)
	if err != nil {
		return err
	}

	d, err := mcdgraph.Parse(input)
	if err != nil {
		return err
	}
	err = d.Validate()
	if err != nil {
		errs := multierr.Errors(err)
		for _, verr := range errs {
			log.Error(ctx, verr.Error())
		}
		return xmain.ExitErrorf(1, "%s has %d problem(s)", ms.HumanPath(inputPath), len(errs))
	}
	ms.Log.Success.Printf("%s is valid", ms.HumanPath(inputPath))
	return nil
}
