// Command nwcli is an interactive inspector for game asset containers:
// open an archive or directory, list and extract resources, dump GFF
// documents as JSON, inspect 2DA sheets and talk tables.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"

	"github.com/okarren/aurora"
	"github.com/okarren/aurora/res"
)

// tracer writes to trace with key 'aurora.cli'
func tracer() tracing.Trace {
	return tracing.Select("aurora.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.aurora":    "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	container := flag.String("open", "", "Container to open (mod/hak/erf/zip/key/dir)")
	flag.Parse()
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}

	pterm.Info.Println("Aurora asset inspector")
	repl, err := readline.New("nw > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, resman: res.NewManager()}
	if *container != "" {
		if err := intp.open(*container); err != nil {
			tracer().Errorf(err.Error())
			os.Exit(4)
		}
	}
	pterm.Info.Println("Quit with <ctrl>D")
	os.Exit(intp.REPL())
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object. It tracks the mounted containers and a
// failure count, which becomes the process exit code for scripted runs.
type Intp struct {
	repl     *readline.Instance
	resman   *res.Manager
	failures int
}

func (intp *Intp) open(path string) error {
	c, err := aurora.OpenContainer(path)
	if err != nil {
		return err
	}
	if !intp.resman.AddContainer(c, true) {
		return fmt.Errorf("container %s already mounted", c.Name())
	}
	pterm.Info.Printf("mounted %s (%d resources)\n", c.Name(), c.Size())
	return nil
}

// REPL starts interactive mode; the return value is the failure count.
func (intp *Intp) REPL() int {
	for {
		line, err := intp.repl.Readline()
		if err != nil {
			break
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			break
		}
		if err := intp.dispatch(fields[0], fields[1:]); err != nil {
			pterm.Error.Println(err.Error())
			intp.failures++
		}
	}
	return intp.failures
}
