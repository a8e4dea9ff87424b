package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) createAdmin(name, email, pwd string) error {
	usr, err := cli.usrSvc.CreateAdmin(context.Background(), name, email, pwd)
	if err != nil {
		return err
	}
	fmt.Printf("admin %q (%s) created\n", usr.Name, usr.Email)
	return nil
}
