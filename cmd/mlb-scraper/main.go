package main

import "github.com/Norbert49/MLB-Sports-Data-Scraper/internal/cli"

func main() {
	cli.Execute()
}
