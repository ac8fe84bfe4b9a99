package main

import (
	"fmt"
	"io"
	"log"
	"os"
)

const usage = `usage: minisite <command> [flags]

commands:
  serve    run the public mini-sites and the admin API
  import   import a markdown directory into one listing's mini-site
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("minisite: %v", err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return fmt.Errorf("command required")
	}
	switch args[0] {
	case "serve":
		return runServe(args[1:], out)
	case "import":
		return runImport(args[1:], out)
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}
