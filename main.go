package main

import "github.com/Mohsinsiddi/nftmkt/cmd"

func main() {
	cmd.Execute()
}
