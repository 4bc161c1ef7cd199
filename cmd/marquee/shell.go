// Shell command: an interactive session over datafiles.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/stagefront/marquee/internal/report"
	"github.com/stagefront/marquee/internal/store"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive session over datafiles",
	Long: `Shell reads commands from stdin, one per line, against an explicitly
opened datafile. Quotes group words that contain spaces. Type help inside
the shell for the command list.

Example:
  marquee shell
  marquee> new demo.db
  marquee> seed
  marquee> get Event,Room,Site * Room.Site=Site.id Event.Room=Room.id`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

const shellHelp = `commands:
  new <path>       create a datafile and open it
  open <path>      open an existing datafile
  close            close the open datafile
  path             print the open datafile's path
  info             metadata and row counts
  get <tables> [<fields>|*] [<where>...]
                   query; tables and fields are comma-separated
  add <table> <Field=Value>...
  import <table> <file.csv> [dest[=source]...]
  export <table> <file.csv>
  report [name]    run a canned report, or list them
  seed             load demonstration data
  help             this list
  quit             leave the shell
`

func runShell(cmd *cobra.Command, args []string) error {
	sh := &shell{out: cmd.OutOrStdout(), log: appLog}
	defer sh.shutdown()

	fmt.Fprintln(sh.out, "marquee shell; type help for commands, quit to leave")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(sh.out, "marquee> ")
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			break
		}
		words := splitArgs(scanner.Text())
		if len(words) == 0 {
			continue
		}
		if words[0] == "quit" || words[0] == "exit" {
			break
		}
		if err := sh.dispatch(words[0], words[1:]); err != nil {
			fmt.Fprintln(sh.out, "error:", err)
		}
	}
	return scanner.Err()
}

// shell holds the state of one interactive session.
type shell struct {
	st  *store.Store
	out io.Writer
	log *slog.Logger
}

func (sh *shell) dispatch(cmd string, args []string) error {
	switch cmd {
	case "help":
		fmt.Fprint(sh.out, shellHelp)
		return nil
	case "new":
		if len(args) != 1 {
			return errors.New("usage: new <path>")
		}
		return sh.create(args[0])
	case "open":
		if len(args) != 1 {
			return errors.New("usage: open <path>")
		}
		return sh.open(args[0])
	case "close":
		if sh.st == nil {
			return errors.New("no datafile open")
		}
		err := sh.st.Close()
		sh.st = nil
		return err
	case "path":
		st, err := sh.current()
		if err != nil {
			return err
		}
		fmt.Fprintln(sh.out, st.Path())
		return nil
	case "info":
		return sh.info()
	case "get":
		return sh.get(args)
	case "add":
		return sh.add(args)
	case "import":
		return sh.importCSV(args)
	case "export":
		return sh.exportCSV(args)
	case "report":
		return sh.report(args)
	case "seed":
		st, err := sh.current()
		if err != nil {
			return err
		}
		if err := store.Seed(st); err != nil {
			return err
		}
		fmt.Fprintln(sh.out, "seeded", st.Path())
		return nil
	default:
		return fmt.Errorf("unknown command %q; type help", cmd)
	}
}

// shutdown releases the open store at the end of the session.
func (sh *shell) shutdown() {
	if sh.st != nil {
		sh.st.Close()
		sh.st = nil
	}
}

// current returns the open store.
func (sh *shell) current() (*store.Store, error) {
	if sh.st == nil {
		return nil, errors.New("no datafile open; use open or new")
	}
	return sh.st, nil
}

func (sh *shell) create(path string) error {
	if sh.st != nil {
		return fmt.Errorf("%s is open; close it first", sh.st.Path())
	}
	st := store.New(sh.log)
	if err := st.Create(path); err != nil {
		return err
	}
	sh.st = st
	fmt.Fprintln(sh.out, "created", path)
	return nil
}

func (sh *shell) open(path string) error {
	if sh.st != nil {
		return fmt.Errorf("%s is open; close it first", sh.st.Path())
	}
	st := store.New(sh.log)
	if err := st.Open(path); err != nil {
		return err
	}
	sh.st = st
	fmt.Fprintln(sh.out, "opened", path)
	return nil
}

func (sh *shell) info() error {
	st, err := sh.current()
	if err != nil {
		return err
	}
	info, err := st.Info()
	if err != nil {
		return err
	}
	fmt.Fprint(sh.out, info)
	return nil
}

func (sh *shell) get(args []string) error {
	st, err := sh.current()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("usage: get <table>[,<table>...] [<field>,...|*] [<where>...]")
	}

	tables := splitList(args[0])
	for _, tbl := range tables {
		if err := requireTable(tbl); err != nil {
			return err
		}
	}

	var fields []string
	if len(args) > 1 && args[1] != "*" {
		fields = splitList(args[1])
	}
	var where []string
	if len(args) > 2 {
		where = args[2:]
	}

	recs, err := st.SelectAll(tables, fields, where)
	if err != nil {
		return err
	}
	return renderRecords(sh.out, recs)
}

func (sh *shell) add(args []string) error {
	st, err := sh.current()
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return errors.New("usage: add <table> <Field=Value>...")
	}
	if err := requireTable(args[0]); err != nil {
		return err
	}

	fields, values, err := parseFieldValues(args[1:])
	if err != nil {
		return err
	}

	id, err := st.Insert(args[0], fields, values)
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, id)
	return nil
}

func (sh *shell) importCSV(args []string) error {
	st, err := sh.current()
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return errors.New("usage: import <table> <file.csv> [dest[=source]...]")
	}
	if err := requireTable(args[0]); err != nil {
		return err
	}

	fieldMap, err := parseMapFlags(args[2:])
	if err != nil {
		return err
	}

	n, err := store.NewImporter(st).ImportCSV(args[0], args[1], fieldMap)
	if err != nil {
		return fmt.Errorf("%d rows in: %w", n, err)
	}
	fmt.Fprintf(sh.out, "imported %d rows into %s\n", n, args[0])
	return nil
}

func (sh *shell) exportCSV(args []string) error {
	st, err := sh.current()
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return errors.New("usage: export <table> <file.csv>")
	}
	if err := requireTable(args[0]); err != nil {
		return err
	}

	n, err := st.ExportCSV(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "exported %d rows to %s\n", n, args[1])
	return nil
}

func (sh *shell) report(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(sh.out, strings.Join(report.Names(), "\n"))
		return nil
	}

	st, err := sh.current()
	if err != nil {
		return err
	}
	r, err := report.New(args[0])
	if err != nil {
		return err
	}
	recs, err := r.Run(st)
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "%s\n\n", r.Title())
	return renderRecords(sh.out, recs)
}

// splitArgs splits a shell line into words. Single or double quotes group
// words containing spaces; quotes do not nest and there are no escapes.
func splitArgs(line string) []string {
	var (
		words  []string
		cur    strings.Builder
		quote  rune
		inWord bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case unicode.IsSpace(r):
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words
}
