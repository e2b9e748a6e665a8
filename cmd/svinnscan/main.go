package main

import (
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/cmd/svinnscan/cmd"
)

func main() {
	cmd.Execute()
}
