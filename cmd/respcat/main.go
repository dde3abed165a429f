// Command respcat decodes a stream of RESP values from a file or stdin and
// prints each one in a human-readable form. The stream is consumed one value
// at a time with the incremental decoder, so concatenated values of any kind
// can be inspected back-to-back.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/eternalApril/respwire/internal/config"
	"github.com/eternalApril/respwire/internal/logger"
	"github.com/eternalApril/respwire/resp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	in := os.Stdin
	name := "stdin"
	if cfg.Input.Path != "" && cfg.Input.Path != "-" {
		f, err := os.Open(cfg.Input.Path)
		if err != nil {
			log.Error("cant open input", zap.Error(err))
			os.Exit(1)
		}
		defer f.Close() //nolint:errcheck
		in, name = f, cfg.Input.Path
	}

	log.Info("decoding stream",
		zap.String("input", name),
		zap.String("format", cfg.Output.Format),
	)

	dec := resp.NewDecoder(in)
	out := bufio.NewWriter(os.Stdout)

	count := 0
	for {
		val, err := dec.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// RESP has no resynchronization, so the rest of the stream is
			// unusable after the first framing error.
			out.Flush() //nolint:errcheck
			log.Error("malformed stream",
				zap.Int("values_decoded", count),
				zap.Error(err),
			)
			os.Exit(1)
		}

		if cfg.Limits.MaxDepth > 0 {
			if d := nestingDepth(val); d > cfg.Limits.MaxDepth {
				out.Flush() //nolint:errcheck
				log.Error("value exceeds nesting depth limit",
					zap.Int("depth", d),
					zap.Int("limit", cfg.Limits.MaxDepth),
				)
				os.Exit(1)
			}
		}

		printValue(out, val, cfg.Output.Format)
		count++

		if cfg.Limits.MaxValues > 0 && count >= cfg.Limits.MaxValues {
			log.Info("value limit reached", zap.Int("limit", cfg.Limits.MaxValues))
			break
		}
	}

	if err := out.Flush(); err != nil {
		log.Error("cant write output", zap.Error(err))
		os.Exit(1)
	}

	log.Info("stream decoded", zap.Int("values", count))
}

// nestingDepth returns the array nesting depth of v: scalars count 1, an
// array counts one more than its deepest element.
func nestingDepth(v resp.Value) int {
	if v.Type != resp.TypeArray || v.IsNull {
		return 1
	}
	deepest := 0
	for _, el := range v.Array {
		if d := nestingDepth(el); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

func printValue(w io.Writer, v resp.Value, format string) {
	switch format {
	case "inline":
		fmt.Fprintln(w, inline(v))
	default:
		tree(w, v, 0)
	}
}

// tree prints one value per line, indenting array elements under their parent.
func tree(w io.Writer, v resp.Value, indent int) {
	pad := strings.Repeat("  ", indent)

	switch v.Type {
	case resp.TypeSimpleString:
		fmt.Fprintf(w, "%ssimple  %q\n", pad, v.String)
	case resp.TypeError:
		fmt.Fprintf(w, "%serror   %q\n", pad, v.String)
	case resp.TypeInteger:
		fmt.Fprintf(w, "%sinteger %d\n", pad, v.Integer)
	case resp.TypeBulkString:
		if v.IsNull {
			fmt.Fprintf(w, "%sbulk    (nil)\n", pad)
			return
		}
		fmt.Fprintf(w, "%sbulk    (%d bytes) %q\n", pad, len(v.String), v.String)
	case resp.TypeArray:
		if v.IsNull {
			fmt.Fprintf(w, "%sarray   (nil)\n", pad)
			return
		}
		fmt.Fprintf(w, "%sarray   (%d elements)\n", pad, len(v.Array))
		for _, el := range v.Array {
			tree(w, el, indent+1)
		}
	}
}

// inline renders a whole value on a single line.
func inline(v resp.Value) string {
	switch v.Type {
	case resp.TypeSimpleString:
		return string(v.String)
	case resp.TypeError:
		return "(error) " + string(v.String)
	case resp.TypeInteger:
		return "(integer) " + strconv.FormatInt(v.Integer, 10)
	case resp.TypeBulkString:
		if v.IsNull {
			return "(nil)"
		}
		return strconv.Quote(string(v.String))
	case resp.TypeArray:
		if v.IsNull {
			return "(nil array)"
		}
		parts := make([]string, len(v.Array))
		for i, el := range v.Array {
			parts[i] = inline(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ""
}
