package iocli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoInput возвращается, когда ввод закончился до ответа
var ErrNoInput = errors.New("no input")

// Stdio реализует IO поверх потоков команды. Пароль читается без эха,
// только если in это терминал, иначе как обычная строка (pipe, тесты).
type Stdio struct {
	in     *bufio.Reader
	out    io.Writer
	termFd int
	isTerm bool
}

// NewStdio создает IO для потоков in и out
func NewStdio(in io.Reader, out io.Writer) *Stdio {
	s := &Stdio{
		in:  bufio.NewReader(in),
		out: out,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		s.termFd = int(f.Fd())
		s.isTerm = true
	}
	return s
}

func (s *Stdio) Println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	return s.readLine()
}

func (s *Stdio) ReadPassword(prompt string) (string, error) {
	s.Printf("%s", prompt)
	if !s.isTerm {
		return s.readLine()
	}

	pwBytes, err := term.ReadPassword(s.termFd)
	s.Println("")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pwBytes), nil
}

func (s *Stdio) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
