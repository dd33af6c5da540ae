package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"

	"paydash/internal/client"
	"paydash/internal/config"
	"paydash/internal/credential"
	"paydash/internal/domain"
	"paydash/internal/listview"
	"paydash/internal/screen"
	"paydash/internal/telemetry"
)

const (
	exitOK = iota
	exitFailure
	exitUsage
)

// env carries everything a command needs from the process.
type env struct {
	cfg     *config.ClientConfig
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	store   credential.Store
	outcome screen.OutcomeDecider
	nrApp   *newrelic.Application
}

type command struct {
	name    string
	usage   string
	summary string
	// needsLogin routes to the login hint when no token is stored.
	needsLogin bool
	run        func(ctx context.Context, e *env, api *client.Client, args []string) int
}

var commands = []command{
	{"login", "login -u USER [-p PASS]", "sign in and store the access token", false, runLogin},
	{"status", "status", "show whether a token is stored", false, runStatus},
	{"dashboard", "dashboard", "show totals and the revenue of the last days", true, runDashboard},
	{"transactions", "transactions [-tab all|success|failed] [-page N]", "list transactions five per page", true, runTransactions},
	{"show", "show ID", "show a single transaction", true, runShow},
	{"add", "add -amount N -receiver NAME [-method upi|card|wallet]", "add a payment", true, runAdd},
}

// run parses the global flags and dispatches to a subcommand.
func run(ctx context.Context, args []string, e *env) int {
	fs := flag.NewFlagSet("paydash", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	apiURL := fs.String("api", e.cfg.APIURL, "payments API base URL")
	fs.Usage = func() { usage(e.stderr, fs) }
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	name, rest := fs.Arg(0), fs.Args()[1:]
	var cmd *command
	for i := range commands {
		if commands[i].name == name {
			cmd = &commands[i]
			break
		}
	}
	if cmd == nil {
		fmt.Fprintf(e.stderr, "paydash: unknown command %q\n", name)
		fs.Usage()
		return exitUsage
	}

	if e.nrApp != nil {
		txn := e.nrApp.StartTransaction("paydash " + cmd.name)
		defer txn.End()
		ctx = newrelic.NewContext(ctx, txn)
	}

	api := client.New(strings.TrimRight(*apiURL, "/"), e.store,
		client.WithTimeout(e.cfg.Timeout),
		client.WithNewRelic(e.nrApp),
	)

	if cmd.needsLogin {
		route, err := screen.InitialRoute(ctx, e.store)
		if err != nil {
			telemetry.Logger.Warn("Failed to read credential", zap.Error(err))
		}
		if route == screen.RouteLogin {
			fmt.Fprintln(e.stderr, "Not signed in. Run: paydash login -u USER")
			return exitFailure
		}
	}

	return cmd.run(ctx, e, api, rest)
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: paydash [-api URL] COMMAND [ARGS]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-55s %s\n", c.usage, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs.PrintDefaults()
}

func runLogin(ctx context.Context, e *env, api *client.Client, args []string) int {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password (read from stdin when omitted)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *username == "" {
		fmt.Fprintln(e.stderr, "usage: paydash login -u USER [-p PASS]")
		return exitUsage
	}

	if *password == "" {
		fmt.Fprint(e.stderr, "Password: ")
		line, err := bufio.NewReader(e.stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(e.stderr, "paydash: %v\n", err)
			return exitFailure
		}
		*password = strings.TrimRight(line, "\r\n")
	}

	res := screen.NewLogin(api, e.store).Submit(ctx, *username, *password)
	if !res.Authenticated {
		fmt.Fprintln(e.stderr, res.Message)
		return exitFailure
	}
	fmt.Fprintln(e.stdout, "Signed in.")
	return exitOK
}

func runStatus(ctx context.Context, e *env, api *client.Client, args []string) int {
	route, err := screen.InitialRoute(ctx, e.store)
	if err != nil {
		fmt.Fprintf(e.stderr, "paydash: %v\n", err)
		return exitFailure
	}
	if route == screen.RouteMain {
		fmt.Fprintln(e.stdout, "Signed in.")
	} else {
		fmt.Fprintln(e.stdout, "Not signed in.")
	}
	return exitOK
}

func runDashboard(ctx context.Context, e *env, api *client.Client, args []string) int {
	v, err := screen.NewDashboard(api).Focus(ctx)
	if err != nil {
		fmt.Fprintln(e.stderr, v.Message)
		if v.Stats == nil {
			return exitFailure
		}
	}
	renderDashboard(e.stdout, v)
	return exitOK
}

func runTransactions(ctx context.Context, e *env, api *client.Client, args []string) int {
	fs := flag.NewFlagSet("transactions", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	tabName := fs.String("tab", string(listview.TabAll), "filter: all, success or failed")
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	tab, err := listview.ParseTab(*tabName)
	if err != nil {
		fmt.Fprintf(e.stderr, "paydash: %v\n", err)
		return exitUsage
	}

	s := screen.NewTransactions(api)
	if _, err := s.Focus(ctx); err != nil {
		fmt.Fprintln(e.stderr, "Failed to load transactions.")
		return exitFailure
	}
	s.SelectTab(tab)
	renderTransactions(e.stdout, s.SelectPage(*page))
	return exitOK
}

func runShow(ctx context.Context, e *env, api *client.Client, args []string) int {
	if len(args) != 1 || args[0] == "" {
		fmt.Fprintln(e.stderr, "usage: paydash show ID")
		return exitUsage
	}

	v, err := screen.NewDetails(api).Open(ctx, domain.PaymentID(args[0]))
	if err != nil {
		fmt.Fprintln(e.stderr, v.Message)
		return exitFailure
	}
	renderPayment(e.stdout, v.Payment)
	return exitOK
}

func runAdd(ctx context.Context, e *env, api *client.Client, args []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	amount := fs.String("amount", "", "amount")
	receiver := fs.String("receiver", "", "receiver")
	method := fs.String("method", string(domain.PaymentMethodUPI), "upi, card or wallet")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	s := screen.NewAddPayment(api, e.outcome)
	s.SetAmount(*amount)
	s.SetReceiver(*receiver)
	s.SetMethod(domain.PaymentMethod(strings.ToLower(strings.TrimSpace(*method))))

	res := s.Submit(ctx)
	if !res.Done {
		fmt.Fprintln(e.stderr, res.Message)
		return exitFailure
	}
	fmt.Fprintln(e.stdout, res.Message)
	if res.Payment != nil {
		renderPayment(e.stdout, res.Payment)
	}
	return exitOK
}
