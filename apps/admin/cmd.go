package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/jkuniv/studentportal/core/student"
	"github.com/jkuniv/studentportal/core/transfer"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	studentSvc  *student.Service
	transferSvc *transfer.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  bootstrap - ensure the built-in admin account exists")
	fmt.Println("  resetpassword -username USERNAME - reset a student's password")
	fmt.Println("  delete -username USERNAME - delete a student record")
	fmt.Println("  export -out FILE - export all records to a CSV file")
	fmt.Println("  import -in FILE - bulk-import records from a CSV file")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The student's username. The password will be prompted next.")

	deleteCmd := flag.NewFlagSet("delete", flag.ExitOnError)
	deleteUname := deleteCmd.String("username", "", "The student's username.")

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportOut := exportCmd.String("out", "", "Destination CSV file.")

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importIn := importCmd.String("in", "", "Source CSV file.")

	switch args[1] {
	case "bootstrap":
		cli.studentSvc.BootstrapAdmin()
		return nil
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.studentSvc.ResetPassword(*resetPasswordUname, string(pwd))
	case "delete":
		if err := deleteCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *deleteUname == "" {
			deleteCmd.Usage()
			return errHelp
		}
		return cli.studentSvc.Delete(*deleteUname)
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *exportOut == "" {
			exportCmd.Usage()
			return errHelp
		}
		return cli.export(*exportOut)
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importIn == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.bulkImport(*importIn)
	default:
		cli.printUsage()
		return errHelp
	}
}
