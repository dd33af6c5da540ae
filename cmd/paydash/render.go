package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"paydash/internal/domain"
	"paydash/internal/screen"
)

// chartWidth is the width of the longest revenue bar.
const chartWidth = 30

const timeLayout = "2006-01-02 15:04"

func renderDashboard(w io.Writer, v screen.DashboardView) {
	if v.Stats == nil {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total Payments:\t%d\n", v.Stats.TotalPayments)
	fmt.Fprintf(tw, "Total Revenue:\t₹%s\n", v.Stats.TotalRevenue.StringFixed(2))
	fmt.Fprintf(tw, "Failed Transactions:\t%d\n", v.Stats.FailedCount)
	tw.Flush()

	if len(v.Revenue) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Revenue (Last 5 Days)")

	top := decimal.Zero
	for _, p := range v.Revenue {
		if p.Amount.GreaterThan(top) {
			top = p.Amount
		}
	}
	for _, p := range v.Revenue {
		fmt.Fprintf(w, "  %s %-*s ₹%s\n", p.Label, chartWidth, bar(p.Amount, top), p.Amount.StringFixed(2))
	}
}

// bar scales amount against top to at most chartWidth cells.
func bar(amount, top decimal.Decimal) string {
	if !top.IsPositive() || !amount.IsPositive() {
		return ""
	}
	n := amount.Mul(decimal.NewFromInt(chartWidth)).Div(top).Ceil().IntPart()
	return strings.Repeat("█", int(n))
}

func renderTransactions(w io.Writer, v screen.TransactionsView) {
	fmt.Fprintf(w, "Filter: %s\n\n", v.State.Tab)
	if v.Empty() {
		fmt.Fprintln(w, screen.MsgNoTransactions)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRECEIVER\tAMOUNT\tMETHOD\tSTATUS\tDATE")
	for _, p := range v.Items {
		fmt.Fprintf(tw, "%s\t%s\t₹%s\t%s\t%s\t%s\n",
			p.ID, p.Receiver, p.Amount.StringFixed(2), p.Method, p.Status, p.CreatedAt.Local().Format(timeLayout))
	}
	tw.Flush()

	fmt.Fprintln(w)
	pages := make([]string, 0, v.TotalPages)
	for _, n := range v.Pages() {
		if n == v.State.Page {
			pages = append(pages, fmt.Sprintf("[%d]", n))
		} else {
			pages = append(pages, fmt.Sprintf("%d", n))
		}
	}
	fmt.Fprintf(w, "Page %d of %d: %s\n", v.State.Page, v.TotalPages, strings.Join(pages, " "))
}

func renderPayment(w io.Writer, p *domain.Payment) {
	if p == nil {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Amount:\t₹ %s\n", p.Amount.StringFixed(2))
	fmt.Fprintf(tw, "Receiver:\t%s\n", p.Receiver)
	fmt.Fprintf(tw, "Status:\t%s\n", strings.ToUpper(string(p.Status)))
	fmt.Fprintf(tw, "Method:\t%s\n", strings.ToUpper(string(p.Method)))
	fmt.Fprintf(tw, "Date:\t%s\n", p.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(tw, "Transaction ID:\t%s\n", p.ID)
	tw.Flush()
}
