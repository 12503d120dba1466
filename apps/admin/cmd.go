package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/acadtrack/advising/core/directory"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db     *sql.DB
	dirSvc *directory.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run database migrations (goose commands)")
	fmt.Println("  addadviser -id ID -firstname NAME -lastname NAME -program PROGRAM [-middlename NAME] - register an adviser")
	fmt.Println("  addstudent -number NUMBER -firstname NAME -lastname NAME -program PROGRAM -standing \"Year N\" [-middlename NAME] [-adviser ID] [-units N] - register a student")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addAdviserCmd := flag.NewFlagSet("addadviser", flag.ExitOnError)
	adviserID := addAdviserCmd.String("id", "", "The adviser's ID.")
	adviserFirst := addAdviserCmd.String("firstname", "", "The adviser's first name.")
	adviserMiddle := addAdviserCmd.String("middlename", "", "The adviser's middle name.")
	adviserLast := addAdviserCmd.String("lastname", "", "The adviser's last name.")
	adviserProgram := addAdviserCmd.String("program", "", "The program the adviser advises.")

	addStudentCmd := flag.NewFlagSet("addstudent", flag.ExitOnError)
	studentNumber := addStudentCmd.String("number", "", "The student's number.")
	studentFirst := addStudentCmd.String("firstname", "", "The student's first name.")
	studentMiddle := addStudentCmd.String("middlename", "", "The student's middle name.")
	studentLast := addStudentCmd.String("lastname", "", "The student's last name.")
	studentProgram := addStudentCmd.String("program", "", "The student's program.")
	studentStanding := addStudentCmd.String("standing", "", "The student's current standing, e.g. \"Year 2\".")
	studentAdviser := addStudentCmd.String("adviser", "", "The assigned adviser's ID (optional).")
	studentUnits := addStudentCmd.Int("units", 0, "Total units already taken (optional).")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "addadviser":
		if err := addAdviserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *adviserID == "" || *adviserFirst == "" || *adviserLast == "" || *adviserProgram == "" {
			addAdviserCmd.Usage()
			return errHelp
		}
		return cli.addAdviser(*adviserID, *adviserFirst, *adviserMiddle, *adviserLast, *adviserProgram)
	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *studentNumber == "" || *studentFirst == "" || *studentLast == "" || *studentProgram == "" || *studentStanding == "" {
			addStudentCmd.Usage()
			return errHelp
		}
		return cli.addStudent(
			*studentNumber, *studentFirst, *studentMiddle, *studentLast,
			*studentProgram, *studentStanding, *studentAdviser, *studentUnits,
		)
	default:
		cli.printUsage()
		return errHelp
	}
}
