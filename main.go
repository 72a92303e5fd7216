package main

import "github.com/titleflow/wire-batch-pipeline/cmd"

func main() {
	cmd.Execute()
}
