package main

import (
	"morphogen/internal/app"
	"morphogen/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
