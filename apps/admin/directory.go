package main

import (
	"context"

	"github.com/acadtrack/advising/core/directory"
)

func (cli *commandLine) addAdviser(id, first, middle, last, program string) error {
	na := directory.NewAdviser{
		ID:         id,
		FirstName:  first,
		MiddleName: middle,
		LastName:   last,
		Program:    program,
	}
	if err := na.Validate(); err != nil {
		return err
	}
	if _, err := cli.dirSvc.CreateAdviser(context.Background(), na); err != nil {
		return err
	}
	logger.Printf("adviser %s registered\n", id)
	return nil
}

func (cli *commandLine) addStudent(number, first, middle, last, program, standing, adviserID string, units int) error {
	ns := directory.NewStudent{
		Number:          number,
		FirstName:       first,
		MiddleName:      middle,
		LastName:        last,
		Program:         program,
		AdviserID:       adviserID,
		CurrentStanding: standing,
		TotalUnitsTaken: units,
	}
	if err := ns.Validate(); err != nil {
		return err
	}
	if _, err := cli.dirSvc.CreateStudent(context.Background(), ns); err != nil {
		return err
	}
	logger.Printf("student %s registered\n", number)
	return nil
}
