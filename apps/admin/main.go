package main

import (
	"log"
	"os"

	"github.com/jkuniv/studentportal/core"
	"github.com/jkuniv/studentportal/core/student"
	"github.com/jkuniv/studentportal/core/transfer"
	"github.com/jkuniv/studentportal/services/logger"
	"github.com/jkuniv/studentportal/storage/database"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(err)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(database.Reconcile(db))

	repo := database.NewStudentRepository(db)
	svc := student.NewService(repo, logsvc.NewConsoleLogger(logger), conf)

	// start CLI
	cli := commandLine{
		studentSvc:  svc,
		transferSvc: transfer.NewService(repo),
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
