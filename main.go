package main

import (
	"github.com/byxorna/fable/cmd"
)

func main() {
	cmd.Execute()
}
