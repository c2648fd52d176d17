package main

import (
	"oss.terrastruct.com/util-go/xmain"

	"oss.terrastruct.com/mcd/mcdcli"
)

func main() {
	xmain.Main(mcdcli.Run)
}
