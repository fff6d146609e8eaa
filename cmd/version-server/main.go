package main

import "github.com/oshokin/version-file/cmd/version-server/cmd"

func main() {
	cmd.Execute()
}
