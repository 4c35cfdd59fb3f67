package main

import (
	"context"

	"github.com/cube2222/octomap/cmd"
)

func main() {
	cmd.Execute(context.Background())
}
