package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atinyakov/LocalSites/internal/client/view"
	"github.com/atinyakov/LocalSites/internal/service"
)

// Prompt is printed before every command.
const Prompt = "localsites> "

const helpText = `Available commands:
  help                                   show this help
  list                                   show the visible templates
  filter <category>                      all, restaurant, medical, automotive, home-services, professional
  preview <id> | use <id>                preview or use a template
  login-button | signup-button           press the navigation buttons
  open-login | open-signup | close       open or close the modals
  login <email> <password>
  signup <email> <password> <business-type> <full name>
  logout | dashboard | close-dashboard | start-building
  demo | close-demo
  exit`

// Shell reads commands line by line and dispatches them as view events.
type Shell struct {
	In         io.Reader
	Renderer   *Renderer
	Dispatcher *view.Dispatcher
}

// Run loops until exit, end of input or ctx cancellation.
func (s *Shell) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.In)
	s.Renderer.Flush()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Renderer.Print(Prompt)
		if !scanner.Scan() {
			s.Renderer.Println()
			return scanner.Err()
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			s.Renderer.Println(helpText)
		case "list":
			s.Renderer.PrintCards()
		case "exit", "quit":
			s.Renderer.Println("Bye")
			return nil
		default:
			s.report(s.Dispatcher.Dispatch(ctx, args[0], args[1:]...))
			s.Renderer.Flush()
		}
	}
}

// report prints errors the controller has not already surfaced as a
// notification.
func (s *Shell) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, view.ErrUnknownEvent):
		s.Renderer.Println("Unknown command. Type 'help' for a list of commands.")
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrMissingFields):
	case errors.Is(err, view.ErrUsage):
		s.Renderer.Println(fmt.Sprintf("Usage: %s", strings.TrimPrefix(err.Error(), view.ErrUsage.Error()+": ")))
	default:
		s.Renderer.Println(err.Error())
	}
}
