package main

import "github.com/zeekwatch/ja4extract/internal/cmd"

func main() {
	cmd.Execute()
}
