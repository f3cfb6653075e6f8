package main

import (
	"io/ioutil"
	"log"
	"os"

	"github.com/jkuniv/studentportal/apps/api/echo"
	"github.com/jkuniv/studentportal/core"
	"github.com/jkuniv/studentportal/core/report"
	"github.com/jkuniv/studentportal/core/student"
	"github.com/jkuniv/studentportal/core/transfer"
	"github.com/jkuniv/studentportal/services/logger"
	"github.com/jkuniv/studentportal/storage/database"
	"github.com/jkuniv/studentportal/storage/uploadfs"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	if err != nil {
		std.Fatal(err)
	}

	var logger core.Logger
	if conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = logsvc.NewConsoleLogger(std)
	}

	// set up DB: reconcile the schema before any other store operation
	db, err := database.Open(conf)
	errAndDie(std, err)
	defer func() { _ = db.Close() }()
	errAndDie(std, database.Reconcile(db))

	uploads, err := uploadfs.New(conf.Uploads.Root)
	errAndDie(std, err)

	// set up services
	validate, translator := core.NewValidator()
	student.RegisterValidations(validate, translator)

	repo := database.NewStudentRepository(db)
	studentSvc := student.NewService(repo, logger, conf)
	studentSvc.BootstrapAdmin()
	transferSvc := transfer.NewService(repo)

	// the logo is optional; a missing file just leaves it off the report
	logo, _ := ioutil.ReadFile(conf.Report.LogoPath)
	composer := report.NewComposer(conf.InstitutionName, logo)

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Address:     conf.Server.Address,
		Conf:        conf,
		Logger:      logger,
		Validate:    validate,
		Translator:  translator,
		StudentSvc:  studentSvc,
		TransferSvc: transferSvc,
		Composer:    composer,
		Uploads:     uploads,
	})
	app.Start()
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
