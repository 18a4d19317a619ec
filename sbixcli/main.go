package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/sbixtract/applename"
	"github.com/npillmayer/sbixtract/internal/config"
	"github.com/npillmayer/sbixtract/sbix"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"
)

// tracer traces with key 'sbixtract.cli'
func tracer() tracing.Trace {
	return tracing.Select("sbixtract.cli")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := pflag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := pflag.StringP("font", "f", config.DefaultFont, "Font to load")
	index := pflag.Int("index", 1, "Font number within a collection")
	namesfile := pflag.String("names", config.DefaultNames, "Property list with emoji names")
	pflag.Parse()

	// set up logging
	if err := config.SetupTracing("Error"); err != nil { // will set the correct level later
		fatalf(1, "error configuring tracing: %v", err)
	}
	pterm.Info.Println("Welcome to the sbix emoji inspector") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("sbix > ")
	if err != nil {
		fatalf(3, "%v", err)
	}
	intp := &Intp{repl: repl, out: os.Stdout}
	//
	// load font and names to use
	if err := intp.loadFont(*fontname, *index); err != nil {
		fatalf(4, "%v", err)
	}
	intp.loadNames(*namesfile)
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	if err := config.SetupTracing(*tlevel); err != nil {
		fatalf(5, "%v", err)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
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

func fatalf(code int, format string, args ...interface{}) {
	pterm.Error.Printf(format+"\n", args...)
	os.Exit(code)
}

// Intp is our interpreter object
type Intp struct {
	table  *sbix.Table
	names  *applename.Names
	strike *sbix.Strike
	repl   *readline.Instance
	out    io.Writer
}

func (intp *Intp) String() string {
	if intp == nil || intp.table == nil {
		return "()"
	}
	if intp.strike == nil {
		return fmt.Sprintf("( font=%s )", intp.table.Font)
	}
	return fmt.Sprintf("( font=%s ) -> strike %d", intp.table.Font, intp.strike.PPEM)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd := parseCommand(line)
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Command is a parsed input line.
type Command struct {
	code int
	args []string
}

const (
	QUIT int = iota
	HELP
	STRIKES
	STRIKE
	GLYPH
	NAME
)

var opMap = map[string]int{
	"quit":    QUIT,
	"exit":    QUIT,
	"help":    HELP,
	"?":       HELP,
	"strikes": STRIKES,
	"strike":  STRIKE,
	"glyph":   GLYPH,
	"name":    NAME,
}

var opNames = []string{
	"quit",
	"help",
	"strikes",
	"strike",
	"glyph",
	"name",
}

// parseCommand splits a line into an op-code and arguments. Unknown commands
// map to HELP, with the command as its topic.
func parseCommand(line string) Command {
	fields := strings.Fields(line)
	code, ok := opMap[strings.ToLower(fields[0])]
	if !ok {
		return Command{code: HELP, args: fields}
	}
	tracer().Debugf("parsed command: %s %v", opNames[code], fields[1:])
	return Command{code: code, args: fields[1:]}
}

var commandFn = map[int]func(*Intp, []string) (bool, error){
	QUIT:    quitOp,
	HELP:    helpOp,
	STRIKES: strikesOp,
	STRIKE:  strikeOp,
	GLYPH:   glyphOp,
	NAME:    nameOp,
}

func (intp *Intp) execute(cmd Command) (stop bool, err error) {
	f, ok := commandFn[cmd.code]
	if !ok {
		return false, fmt.Errorf("unknown command code: %d", cmd.code)
	}
	return f(intp, cmd.args)
}

func quitOp(intp *Intp, args []string) (bool, error) {
	return true, nil
}

// --- Font Loading -----------------------------------------------------

func (intp *Intp) loadFont(fontname string, index int) (err error) {
	if intp.table, err = sbix.Load(fontname, index); err != nil {
		tracer().Errorf("cannot load font %s: %v", fontname, err)
		return err
	}
	tracer().Infof("loaded sbix table of %s", intp.table.Font)
	pterm.Printf("font %s has %d strikes\n", intp.table.Font, len(intp.table.Strikes))
	return nil
}

func (intp *Intp) loadNames(path string) {
	var err error
	if intp.names, err = applename.Load(path); err != nil {
		pterm.Warning.Printf("no emoji names loaded, using shortcodes: %v\n", err)
		return
	}
	pterm.Printf("loaded %d emoji names\n", intp.names.Len())
}

// ----------------------------------------------------------------------

var ErrNoArg = errors.New("argument missing")
