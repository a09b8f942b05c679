// Command propose builds a single proposal offline: it reads a proposal
// request JSON from a file or stdin and writes the proposal JSON or the
// rendered PDF. Useful for generating proposals from spreadsheets without
// running the HTTP service.
package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/levenlabs/go-lflag"

	"github.com/levesol/solarproposal/pkg/log"
	"github.com/levesol/solarproposal/pkg/proposal"
	"github.com/levesol/solarproposal/pkg/refdata"
	"github.com/levesol/solarproposal/pkg/render"
	"github.com/levesol/solarproposal/pkg/types"
)

func main() {
	ref := refdata.Configured()
	renderer := render.Configured()

	input := lflag.String("input", "-", "request JSON file to read, - for stdin")
	output := lflag.String("output", "-", "file to write, - for stdout")
	pdf := lflag.Bool("pdf", false, "write the rendered PDF instead of the proposal JSON")

	lflag.Configure()

	ctx := context.Background()

	var in io.Reader = os.Stdin
	if *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to open input", slog.Any("error", err))
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	var req types.ProposalRequest
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to decode request", slog.Any("error", err))
		os.Exit(1)
	}
	if err := req.Validate(); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "invalid request", slog.Any("error", err))
		os.Exit(1)
	}

	p, err := proposal.New(ref).Build(ctx, req)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to build proposal", slog.Any("error", err))
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *output != "-" {
		f, err := os.Create(*output)
		if err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to create output", slog.Any("error", err))
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if *pdf {
		b, err := renderer.Render(p)
		if err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to render pdf", slog.Any("error", err))
			os.Exit(1)
		}
		if _, err := out.Write(b); err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to write pdf", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to write proposal", slog.Any("error", err))
		os.Exit(1)
	}
}
