package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nexuchat/nexuchat/internal/adapter"
	"github.com/nexuchat/nexuchat/internal/session"
	"github.com/nexuchat/nexuchat/internal/shared/cmdutils"
)

// thinkingDelay is how long a request may run before the REPL says so.
const thinkingDelay = 300 * time.Millisecond

var exitCommands = map[string]bool{
	"exit":  true,
	"quit":  true,
	"/exit": true,
	"/quit": true,
	":q":    true,
}

const replHelp = `Commands:
  /ask <text>      single prompt without conversation memory
  /model [id]      show or set the model
  /reset           go back to the server default model
  /pick <n>        use the n-th model from /models
  /models          list available models
  /refresh         reload the model list
  /endpoint [url]  show or change the service URL
  /last            show the last reply
  /len             number of messages in the conversation
  /history         show the conversation
  /clear           forget the conversation`

// repl reads lines from in and drives the adapter, one request at a time.
type repl struct {
	ad  *adapter.Adapter
	in  io.Reader
	out io.Writer
}

func newREPL(ad *adapter.Adapter, in io.Reader, out io.Writer) *repl {
	return &repl{ad: ad, in: in, out: out}
}

// Run processes input until EOF, an exit command, or ctx cancellation.
func (r *repl) Run(ctx context.Context) error {
	lines := make(chan string)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(r.out, "You: ")

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(r.out)
				return nil
			}
			line = strings.TrimSpace(l)
		}

		if line == "" {
			continue
		}
		if exitCommands[strings.ToLower(line)] {
			return nil
		}

		if strings.HasPrefix(line, "/") {
			fmt.Fprintln(r.out, r.dispatch(ctx, line))
			continue
		}

		r.converse(ctx, line)
	}
}

// converse sends one prompt with memory, announcing when it takes a while.
func (r *repl) converse(ctx context.Context, prompt string) {
	sess := r.ad.Session()

	results := make(chan session.Result, 1)
	go func() { results <- sess.AskWithHistoryResult(ctx, prompt) }()

	timer := time.NewTimer(thinkingDelay)
	defer timer.Stop()
	for {
		select {
		case res := <-results:
			if !res.OK() {
				cmdutils.PrintError(r.out, res.String())
				return
			}
			cmdutils.PrintResponse(r.out, res.Text)
			return
		case <-timer.C:
			if sess.IsLoading() {
				cmdutils.PrintProgress(r.out, "thinking...")
			}
		}
	}
}

// dispatch runs a slash command and returns the text to show.
func (r *repl) dispatch(ctx context.Context, line string) string {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	sess := r.ad.Session()
	cat := r.ad.Catalog()

	switch strings.ToLower(name) {
	case "/help":
		return replHelp
	case "/ask":
		return sess.Ask(ctx, arg)
	case "/model":
		if arg == "" {
			return "Model: " + sess.CurrentModel()
		}
		sess.SetModel(arg)
		return "Model set to " + arg
	case "/reset":
		sess.ResetModel()
		return "Model reset to " + sess.CurrentModel()
	case "/pick":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return "Usage: /pick <n>"
		}
		m, ok := cat.ModelAt(n)
		if !ok {
			return cat.GetByIndex(n)
		}
		sess.SetModel(m.ID)
		return fmt.Sprintf("Model set to %s (%s)", m.ID, m.Name)
	case "/models":
		return strings.TrimRight(cat.ListAsText(), "\n")
	case "/refresh":
		r.ad.RefreshModels(ctx)
		return fmt.Sprintf("%d models available", cat.Count())
	case "/endpoint":
		if arg == "" {
			return "Endpoint: " + r.ad.Endpoint()
		}
		r.ad.SetEndpoint(arg)
		return "Endpoint set to " + arg + " (reloading models)"
	case "/last":
		return sess.LastResponse()
	case "/len":
		return strconv.Itoa(sess.HistoryLength())
	case "/history":
		turns := sess.History()
		if len(turns) == 0 {
			return "(empty)"
		}
		var sb strings.Builder
		for i, t := range turns {
			if i > 0 {
				sb.WriteByte('\n')
			}
			fmt.Fprintf(&sb, "%s: %s", t.Role, t.Content)
		}
		return sb.String()
	case "/clear":
		sess.ClearHistory()
		return "Conversation cleared"
	default:
		return fmt.Sprintf("Unknown command: %s (try /help)", name)
	}
}
