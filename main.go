package main

import (
	"github.com/ColonelBlimp/tapeengine/cmd"
	"github.com/ColonelBlimp/tapeengine/internal/recovery"
)

func main() {
	defer recovery.HandlePanic()
	cmd.Execute()
}
