// Command collegefinder runs the CollegeFinder API server and its
// companion tools.
package main

import (
	"fmt"
	"os"

	"github.com/HerbHall/collegefinder/internal/version"
)

const usage = `Usage: collegefinder [command] [flags]

Commands:
  serve       run the API server (default)
  backup      archive the database and config
  restore     restore a backup archive
  search      fetch the catalog and filter it locally
  shortlist   manage liked and compared colleges
  version     print build information
`

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "serve":
			runServe(os.Args[2:])
			return
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "search":
			runSearch(os.Args[2:])
			return
		case "shortlist":
			runShortlist(os.Args[2:])
			return
		case "version", "--version", "-version":
			fmt.Println(version.Info())
			return
		case "help", "--help", "-h":
			fmt.Print(usage)
			return
		}
	}
	runServe(os.Args[1:])
}
