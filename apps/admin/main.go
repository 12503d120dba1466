package main

import (
	"log"
	"os"

	"github.com/acadtrack/advising/core"
	"github.com/acadtrack/advising/core/directory"
	"github.com/acadtrack/advising/storage/database"
	"github.com/acadtrack/advising/storage/database/sqlrepos"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	// start CLI
	cli := commandLine{
		db:     db.DB,
		dirSvc: directory.NewService(sqlrepos.NewDirectoryRepository(db)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
