package main

import (
	"fmt"
	"io"
	"os"

	"github.com/wyfcoding/optionanalytics/internal/optionanalytics/domain"
)

// pricer 终端交互式定价器: 报价, 希腊值, 隐含波动率与 PnL 曲面
func main() {
	if err := run(NewPrompter(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(p *Prompter, out io.Writer) error {
	fmt.Fprintln(out, "=== Option Pricer ===")

	params := domain.OptionParams{
		S:     p.Float("Spot price", 100),
		K:     p.Float("Strike price", 100),
		T:     p.Float("Time to expiry (years)", 0.25),
		R:     p.Float("Risk-free rate", 0.05),
		Sigma: p.Float("Volatility", 0.2),
	}

	for {
		action := p.Choice("Select action:", []string{
			"Price quote",
			"Greeks",
			"Implied volatility",
			"PnL surface",
			"Quit",
		}, 0)

		switch action {
		case 0:
			quote, err := domain.CalculateQuote(params)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Call: %.4f  Put: %.4f\n", quote.Call, quote.Put)
		case 1:
			greeks, err := domain.CalculateGreeks(params)
			if err != nil {
				return err
			}
			printGreeks(out, greeks)
		case 2:
			if err := solveImpliedVol(p, out, params); err != nil {
				return err
			}
		case 3:
			if err := printSurface(p, out, params); err != nil {
				return err
			}
		case 4:
			fmt.Fprintln(out, "bye")
			return nil
		}
	}
}

func printGreeks(out io.Writer, g domain.Greeks) {
	fmt.Fprintf(out, "Call Delta: %8.4f  Put Delta: %8.4f\n", g.CallDelta, g.PutDelta)
	fmt.Fprintf(out, "Gamma:      %8.4f  Vega:      %8.4f\n", g.Gamma, g.Vega)
	fmt.Fprintf(out, "Call Theta: %8.4f  Put Theta: %8.4f\n", g.CallTheta, g.PutTheta)
	fmt.Fprintf(out, "Call Rho:   %8.4f  Put Rho:   %8.4f\n", g.CallRho, g.PutRho)
}

func solveImpliedVol(p *Prompter, out io.Writer, params domain.OptionParams) error {
	sideIdx := p.Choice("Option side:", []string{"call", "put"}, 0)
	side := domain.OptionSideCall
	if sideIdx == 1 {
		side = domain.OptionSidePut
	}
	observed := p.Float("Observed market price", 5)

	result, err := domain.SolveImpliedVol(observed, params.S, params.K, params.T, params.R, side)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Implied vol: %.6f (converged=%v, iterations=%d)\n",
		result.Sigma, result.Converged, result.Iterations)
	return nil
}

func printSurface(p *Prompter, out io.Writer, params domain.OptionParams) error {
	callCost := p.Float("Call purchase price", 5)
	putCost := p.Float("Put purchase price", 5)
	priceRange := p.Float("Price range (fraction)", 0.1)
	volRange := p.Float("Vol range (fraction)", 0.3)
	gridSize := p.Int("Grid size", 10)

	surface, err := domain.GeneratePnLSurface(params, callCost, putCost, priceRange, volRange, gridSize)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Call PnL surface (rows=vol asc, cols=price asc):")
	printMatrix(out, surface.VolAxis, surface.PriceAxis, surface.CallPnL)
	fmt.Fprintln(out, "Put PnL surface:")
	printMatrix(out, surface.VolAxis, surface.PriceAxis, surface.PutPnL)
	return nil
}

func printMatrix(out io.Writer, rowAxis, colAxis []float64, cells [][]float64) {
	fmt.Fprintf(out, "%8s", "")
	for _, c := range colAxis {
		fmt.Fprintf(out, " %8.2f", c)
	}
	fmt.Fprintln(out)
	for i, r := range rowAxis {
		fmt.Fprintf(out, "%8.4f", r)
		for _, v := range cells[i] {
			fmt.Fprintf(out, " %8.2f", v)
		}
		fmt.Fprintln(out)
	}
}
