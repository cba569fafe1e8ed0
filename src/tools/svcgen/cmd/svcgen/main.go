// Command svcgen generates the user service table glue from a plain
// list of service names, one per line.  Each name X becomes an entry
// wired to a function named svc followed by X with its first letter
// upper-cased (yield -> svcYield), which the consuming package must
// provide.
// Regeneration is skipped when the output is newer than the input.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

var pkg = flag.String("p", "main", "package to emit generated code into")

func main() {
	flag.Parse()
	if flag.NArg() < 2 {
		log.Fatalf("unable to process input, expected arguments: " +
			"svcgen [-p pkg] <infile> <outfile>")
	}
	in, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	defer in.Close()

	exists := true
	st, err := os.Stat(flag.Arg(1))
	if err != nil {
		if _, ok := err.(*os.PathError); !ok {
			log.Fatalf("%v", err)
		}
		exists = false
	}
	var lastGenTime time.Time
	if exists {
		lastGenTime = st.ModTime()
	}
	st, err = os.Stat(flag.Arg(0))
	if err != nil {
		log.Fatalf("stat %s: %v", flag.Arg(0), err)
	}
	if !st.ModTime().After(lastGenTime) {
		log.Printf("%s is up to date", flag.Arg(1))
		os.Exit(0)
	}
	generate(in, flag.Arg(1))
}

func generate(fp *os.File, outFilename string) {
	out, err := os.Create(outFilename)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer out.Close()

	wr := bufio.NewWriter(out)
	wr.WriteString(fmt.Sprintf(preamble, *pkg))

	var entries []string
	rd := bufio.NewScanner(fp)
	for rd.Scan() {
		name := strings.TrimSpace(rd.Text())
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		entries = append(entries, name)
		wr.WriteString(fmt.Sprintf(entryLit, name, title(name)))
	}
	if err := rd.Err(); err != nil {
		log.Fatalf("error reading input: %v", err)
	}
	wr.WriteString(trailer)
	if err := wr.Flush(); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("wrote %d service entries to %s", len(entries), outFilename)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
