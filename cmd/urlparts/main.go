package main

import "github.com/vizee/urlparts/cli"

func main() {
	cli.Main()
}
