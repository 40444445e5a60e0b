package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Stdio reads prompts from in and prints to out.
// Пароль читается без эха, только если in - терминал.
type Stdio struct {
	in   *bufio.Reader
	out  io.Writer
	file *os.File
	mu   sync.Mutex
}

// NewStdio returns IO over os.Stdin and os.Stdout
func NewStdio() IO {
	s := New(os.Stdin, os.Stdout)
	s.file = os.Stdin
	return s
}

// New returns IO over arbitrary streams
func New(in io.Reader, out io.Writer) *Stdio {
	return &Stdio{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Write(p)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	return s.readLine()
}

func (s *Stdio) ReadPassword(prompt string) (string, error) {
	s.Printf("%s", prompt)

	if s.file == nil || !term.IsTerminal(int(s.file.Fd())) {
		return s.readLine()
	}

	pwBytes, err := term.ReadPassword(int(s.file.Fd()))
	s.Println("")
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}

// readLine читает строку; последняя строка без \n тоже принимается
func (s *Stdio) readLine() (string, error) {
	input, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
