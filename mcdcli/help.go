package mcdcli

import (
	"context"
	"fmt"
	"path/filepath"

	"oss.terrastruct.com/util-go/xmain"

	"oss.terrastruct.com/mcd/lib/version"
	"oss.terrastruct.com/mcd/mcdthemes/mcdthemescatalog"
)

func help(ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, `%[1]s %[2]s
Usage:
  %[1]s [--watch=false] [--theme=0] file.json [file.svg | file.json]
  %[1]s fmt file.json ...
  %[1]s validate file.json

%[1]s lays out and renders the MCD diagram file.json to file.svg, or writes the laid
out render plan when the output ends in .json.
It defaults to file.svg if an output path is not provided.

Use - to have %[1]s read from stdin or write to stdout.

Flags:
%[3]s

Subcommands:
  %[1]s themes - Lists available themes
  %[1]s fmt file.json ... - Format passed files
  %[1]s validate file.json - Validates file.json
  %[1]s version - Prints the version

See more docs and the source code at https://oss.terrastruct.com/mcd.
`, filepath.Base(ms.Name), version.Version, ms.Opts.Defaults())
}

func themesCmd(_ context.Context, ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, "Available themes:\n%s", mcdthemescatalog.CLIString())
}
