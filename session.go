package facultysearch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultResultsPerPage is the session page size when none is configured.
const DefaultResultsPerPage = 5

// Searcher ranks a free-text query. *Ranker implements it.
type Searcher interface {
	Rank(ctx context.Context, query string) ([]Hit, error)
}

// Phase is the state of an interactive query session.
type Phase int

const (
	AwaitingInput Phase = iota
	ShowingPage
	Terminated
)

func (p Phase) String() string {
	switch p {
	case AwaitingInput:
		return "awaiting-input"
	case ShowingPage:
		return "showing-page"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// CommandKind classifies one line of user input.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdQuery
	CmdNext
	CmdPrev
	CmdQuit
)

// Command is one parsed input line. For CmdQuery, Hits carries the
// ranking so Apply stays pure.
type Command struct {
	Kind  CommandKind
	Query string
	Hits  []Hit
}

// ParseCommand maps an input line to a Command. Anything that is not a
// reserved word is a query. A blank line is CmdNone: it re-prompts without
// ranking and keeps the current results, since an empty query can never
// match a term.
func ParseCommand(line string) Command {
	s := strings.TrimSpace(line)
	switch strings.ToLower(s) {
	case "":
		return Command{Kind: CmdNone}
	case "quit", "-q":
		return Command{Kind: CmdQuit}
	case "next", "-next":
		return Command{Kind: CmdNext}
	case "prev", "-prev":
		return Command{Kind: CmdPrev}
	}
	return Command{Kind: CmdQuery, Query: s}
}

// State is the whole session state. It is never persisted.
type State struct {
	Phase   Phase
	Query   string
	Pages   [][]Hit
	Cursor  int
	PerPage int
}

// NewState returns the initial state for a session with perPage results
// per page.
func NewState(perPage int) State {
	if perPage <= 0 {
		perPage = DefaultResultsPerPage
	}
	return State{Phase: AwaitingInput, PerPage: perPage}
}

// Apply is the session transition function. It never fails; the cursor is
// clamped to [0, len(Pages)-1].
func Apply(s State, cmd Command) State {
	if s.Phase == Terminated {
		return s
	}
	switch cmd.Kind {
	case CmdQuit:
		s.Phase = Terminated
	case CmdQuery:
		s.Phase = ShowingPage
		s.Query = cmd.Query
		s.Pages = Paginate(cmd.Hits, s.PerPage)
		s.Cursor = 0
	case CmdNext:
		s.Cursor = clampCursor(s.Cursor+1, len(s.Pages))
	case CmdPrev:
		s.Cursor = clampCursor(s.Cursor-1, len(s.Pages))
	}
	return s
}

func clampCursor(c, pageCount int) int {
	return max(0, min(c, pageCount-1))
}

// CurrentPage returns the hits under the cursor, or nil if there are none.
func (s State) CurrentPage() []Hit {
	if len(s.Pages) == 0 {
		return nil
	}
	return s.Pages[s.Cursor]
}

// Session drives the query state machine over a line-oriented console.
type Session struct {
	Searcher Searcher
	PerPage  int
	Log      *zap.Logger

	now func() time.Time
}

const sessionPrompt = "**********\nSearch Faculty Crawler ('quit' to quit, 'next' for the next page, 'prev' for the previous page): "

// Run reads commands from in until quit or end of input, writing results
// to out. A failed query is logged and reported, and leaves the state as
// it was. Only context cancellation ends the session early.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}
	now := s.now
	if now == nil {
		now = time.Now
	}

	state := NewState(s.PerPage)
	sc := bufio.NewScanner(in)
	for state.Phase != Terminated {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, sessionPrompt)
		if !sc.Scan() {
			// end of input quits
			fmt.Fprintln(out)
			break
		}

		cmd := ParseCommand(sc.Text())
		var elapsed time.Duration
		if cmd.Kind == CmdQuery {
			start := now()
			hits, err := s.Searcher.Rank(ctx, cmd.Query)
			if err != nil {
				log.Error("query failed", zap.String("query", cmd.Query), zap.Error(err))
				fmt.Fprintln(out, "Search failed, try again.")
				continue
			}
			elapsed = now().Sub(start)
			cmd.Hits = hits
			log.Info("query", zap.String("query", cmd.Query), zap.Int("hits", len(hits)), zap.Duration("elapsed", elapsed))
		}

		state = Apply(state, cmd)
		if cmd.Kind == CmdNone || state.Phase == Terminated {
			continue
		}
		if cmd.Kind == CmdQuery && len(state.Pages) > 0 {
			fmt.Fprintf(out, "Results found in %.4fs\n", elapsed.Seconds())
		}
		renderPage(out, state)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Thank you for using Faculty Crawler!")
	return nil
}

func renderPage(w io.Writer, s State) {
	page := s.CurrentPage()
	if page == nil {
		fmt.Fprintln(w, "No results found!")
		return
	}
	for i, h := range page {
		fmt.Fprintf(w, "%d) %s\n", i+1, h.URL)
	}
	fmt.Fprintf(w, "Page %d/%d\n\n", s.Cursor+1, len(s.Pages))
}
