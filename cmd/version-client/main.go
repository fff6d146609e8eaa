package main

import "github.com/oshokin/version-file/cmd/version-client/cmd"

func main() {
	cmd.Execute()
}
