package main

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/okarren/aurora/gff"
	"github.com/okarren/aurora/i18n"
	"github.com/okarren/aurora/res"
	"github.com/okarren/aurora/twoda"
)

func (intp *Intp) dispatch(cmd string, args []string) error {
	switch cmd {
	case "help":
		return intp.help()
	case "open":
		return intp.cmdOpen(args)
	case "ls":
		return intp.cmdList(args)
	case "cat":
		return intp.cmdCat(args)
	case "gff":
		return intp.cmdGff(args)
	case "2da":
		return intp.cmd2da(args)
	case "tlk":
		return intp.cmdTlk(args)
	case "extract":
		return intp.cmdExtract(args)
	}
	return fmt.Errorf("unknown command %q, try help", cmd)
}

func (intp *Intp) help() error {
	pterm.Println("open <path>             mount a container")
	pterm.Println("ls [regex]              list resources, topmost copy only")
	pterm.Println("cat <resref.ext>        print resource bytes")
	pterm.Println("gff <resref.ext>        dump a GFF document as JSON")
	pterm.Println("2da <name>              show a 2DA sheet summary")
	pterm.Println("tlk <path> <strref>     look a string reference up")
	pterm.Println("extract <regex> <dir>   write matching resources to a directory")
	pterm.Println("quit                    leave")
	return nil
}

func (intp *Intp) cmdOpen(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: open <path>")
	}
	return intp.open(args[0])
}

func (intp *Intp) cmdList(args []string) error {
	re := regexp.MustCompile(".*")
	if len(args) > 0 {
		var err error
		if re, err = regexp.Compile(args[0]); err != nil {
			return err
		}
	}
	count := 0
	intp.resman.Visit(func(r res.Resource) {
		if re.MatchString(r.Filename()) {
			pterm.Println(r.Filename())
			count++
		}
	})
	pterm.Info.Printf("%d resources\n", count)
	return nil
}

func (intp *Intp) demand(name string) (res.Data, error) {
	d := intp.resman.DemandByName(name)
	if d.IsEmpty() {
		return d, fmt.Errorf("no resource %q", name)
	}
	return d, nil
}

func (intp *Intp) cmdCat(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: cat <resref.ext>")
	}
	d, err := intp.demand(args[0])
	if err != nil {
		return err
	}
	pterm.Printf("%s\n", d.Bytes)
	return nil
}

func (intp *Intp) cmdGff(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: gff <resref.ext>")
	}
	d, err := intp.demand(args[0])
	if err != nil {
		return err
	}
	doc := gff.FromBytes(d.Bytes)
	if !doc.Valid() {
		return fmt.Errorf("%s is not a valid GFF document", args[0])
	}
	pterm.Printf("%s\n", gff.ToJSON(doc))
	return nil
}

func (intp *Intp) cmd2da(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: 2da <name>")
	}
	d, err := intp.demand(args[0] + ".2da")
	if err != nil {
		return err
	}
	sheet := twoda.Parse(string(d.Bytes))
	if !sheet.Valid() {
		return fmt.Errorf("%s is not a valid 2DA sheet", args[0])
	}
	pterm.Info.Printf("%s: %d rows, %d columns\n", args[0], sheet.Rows(), sheet.Columns())
	pterm.Printf("columns: %v\n", sheet.ColumnNames())
	return nil
}

func (intp *Intp) cmdTlk(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: tlk <path> <strref>")
	}
	strref, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		return err
	}
	t := i18n.LoadTlk(filepath.Clean(args[0]))
	if !t.Valid() {
		return fmt.Errorf("%s is not a valid talk table", args[0])
	}
	pterm.Printf("%d: %q\n", strref, t.Get(uint32(strref)))
	return nil
}

func (intp *Intp) cmdExtract(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: extract <regex> <dir>")
	}
	re, err := regexp.Compile(args[0])
	if err != nil {
		return err
	}
	count, err := intp.resman.Extract(re, args[1])
	if err != nil {
		return err
	}
	pterm.Info.Printf("extracted %d resources to %s\n", count, args[1])
	return nil
}
