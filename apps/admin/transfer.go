package main

import (
	"fmt"
	"os"
)

func (cli *commandLine) export(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return cli.transferSvc.Export(f)
}

func (cli *commandLine) bulkImport(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	imported, rowErrs, err := cli.transferSvc.Import(f)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d record(s)\n", imported)
	for _, rowErr := range rowErrs {
		fmt.Println(rowErr)
	}
	return nil
}
