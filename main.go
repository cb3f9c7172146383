package main

import "github.com/datastax/data-filter-apis/cmd"

func main() {
	cmd.Execute()
}
