package main

import "github.com/playerbase/playerbase/internal/cli"

func main() {
	cli.Execute()
}
