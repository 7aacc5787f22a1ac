package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// cliPrompter implements depsolve.UserPrompter by asking on stdin/stdout,
// a thin terminal-backed collaborator kept entirely outside the core
// package.
type cliPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newCLIPrompter(in io.Reader, out io.Writer) *cliPrompter {
	return &cliPrompter{in: bufio.NewReader(in), out: out}
}

func (p *cliPrompter) AskUser(question string, def bool) bool {
	fmt.Fprintf(p.out, "%s [%s]: ", question, yesNoDefault(def))
	line, err := p.in.ReadString('\n')
	if err != nil {
		return def
	}
	line = strings.TrimSpace(strings.ToLower(line))
	switch line {
	case "":
		return def
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}

func (p *cliPrompter) PromptChoice(n int) int {
	fmt.Fprintf(p.out, "select one of %d candidate plans [0-%d, default 0]: ", n, n-1)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return 0
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0
	}
	choice, err := strconv.Atoi(line)
	if err != nil || choice < 0 || choice >= n {
		return 0
	}
	return choice
}

func yesNoDefault(def bool) string {
	if def {
		return "Y/n"
	}
	return "y/N"
}
