package main

import (
	"flag"
	"fmt"
	"os"

	"blog-service/server"

	_ "github.com/mattn/go-sqlite3"
	"github.com/umakantv/go-utils/db/migrations"
)

func main() {
	commandFlag := flag.String("command", "start", "Command to run modules")
	nameFlag := flag.String("name", "", "Migration name (alphanum+underscore only)")
	dirFlag := flag.String("dir", ".", "Target directory for the new .sql file (e.g. ./migrations)")
	flag.Parse()

	if *commandFlag == "" {
		usage()
		os.Exit(1)
	}

	switch *commandFlag {
	case "start":
		server.StartServer()
	case "start-anonymous":
		server.StartAnonymousServer()
	case "create-migration":
		migrations.CreateMigration(nameFlag, dirFlag)
	default:
		fmt.Println("Unknown command:", *commandFlag)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: go run main.go --command <command-name> [... other options]")
	fmt.Println("Commands:")
	fmt.Println("  start              serve the blog with accounts and SQLite storage (default)")
	fmt.Println("  start-anonymous    serve a single-author blog kept in memory")
	fmt.Println("  create-migration   write a new migration file (--name, --dir)")
}
