// Command puzzlequest is the terminal tile puzzle game and its admin tools.
package main

import "github.com/mesh-intelligence/puzzlequest/internal/cli"

func main() {
	cli.Execute()
}
