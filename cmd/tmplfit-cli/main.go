package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], dependencies{
		Out:      os.Stdout,
		Err:      os.Stderr,
		Prompter: surveyPrompter{},
	}))
}
