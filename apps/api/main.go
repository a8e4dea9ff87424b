package main

import (
	"log"
	"os"

	"github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/auth"
	"github.com/trezcool/darasa/core/user"
	"github.com/trezcool/darasa/core/week"
	"github.com/trezcool/darasa/services/email"
	"github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/storage/database"
	"github.com/trezcool/darasa/storage/database/sqlx"
	"github.com/trezcool/darasa/storage/session"
)

func main() {
	conf, err := core.NewConfig()
	errAndDie(err)

	std := log.New(os.Stdout, conf.AppName+" ", log.LstdFlags|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")

	validate, translator := core.NewValidator()

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer func() { _ = db.Close() }()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrSvc := user.NewService(conf, sqlxrepos.NewUserRepository(db), mailSvc)
	authSvc := auth.NewService(conf, sessionstore.NewMemoryStore(), usrSvc)
	assignmentSvc := assignment.NewService(sqlxrepos.NewAssignmentRepository(db))
	weekSvc := week.NewService(sqlxrepos.NewWeekRepository(db))

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Addr:          conf.Server.Address(),
		Conf:          conf,
		Logger:        logger,
		Validate:      validate,
		Translator:    translator,
		AuthSvc:       authSvc,
		UserSvc:       usrSvc,
		AssignmentSvc: assignmentSvc,
		WeekSvc:       weekSvc,
	})
	app.Start()
}

func errAndDie(err error) {
	if err != nil {
		log.Fatalf("%+v", err)
	}
}
