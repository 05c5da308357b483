// Package iocli отвечает за ввод и вывод интерактивных команд CLI.
package iocli

//go:generate moq -out io_mock.go . IO

// IO интерактивный ввод/вывод команды
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
}
