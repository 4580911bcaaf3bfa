package main

import (
	"github.com/axdriver/axdriver/cmd"

	_ "github.com/axdriver/axdriver/pkg/platforms"
)

func main() {
	cmd.Execute()
}
