package nets

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/reusee/taicc/asm"
	"github.com/reusee/taicc/drivers"
	"github.com/reusee/taicc/logs"
	"github.com/reusee/taicc/stackvm"
	"github.com/reusee/taicc/syncs"
)

const maxBodySize = 1 << 20

type Handler http.Handler

func (Module) Handler(
	generate drivers.Generate,
	defaultTarget drivers.Target,
	entry drivers.EntryName,
	maxCompilations MaxCompilations,
	newUnit logs.NewUnit,
	logger logs.Logger,
) Handler {
	sem := syncs.NewSemaphore(int(maxCompilations))

	// read body and run fn with a compilation slot held
	handle := func(
		fn func(ctx context.Context, req *http.Request, source string) ([]byte, error),
	) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			if req.Method != http.MethodPost {
				w.Header().Set("Allow", http.MethodPost)
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
				return
			}
			body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodySize))
			if err != nil {
				http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
				return
			}

			if err := sem.AcquireContext(req.Context()); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
			defer sem.Release()

			ctx, _ := newUnit(req.Context(), req.URL.Path)
			out, err := fn(ctx, req, string(body))
			if err != nil {
				logger.InfoContext(ctx, "request failed",
					"path", req.URL.Path,
					"error", err,
				)
				http.Error(w, err.Error(), statusOf(err))
				return
			}
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Write(out)
		}
	}

	mux := http.NewServeMux()

	mux.Handle("/compile", handle(func(ctx context.Context, req *http.Request, source string) ([]byte, error) {
		targetName := string(defaultTarget)
		if name := req.URL.Query().Get("target"); name != "" {
			targetName = name
		}
		target, err := asm.Lookup(targetName)
		if err != nil {
			return nil, err
		}
		_, code, err := generate(ctx, "request", source)
		if err != nil {
			return nil, err
		}
		buf := new(bytes.Buffer)
		if err := asm.Emit(buf, target, string(entry), code); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}))

	mux.Handle("/eval", handle(func(ctx context.Context, req *http.Request, source string) ([]byte, error) {
		_, code, err := generate(ctx, "request", source)
		if err != nil {
			return nil, err
		}
		value, err := stackvm.Exec("request", code)
		if err != nil {
			return nil, err
		}
		return []byte(strconv.FormatInt(value, 10) + "\n"), nil
	}))

	return mux
}

func statusOf(err error) int {
	if errors.Is(err, stackvm.ErrDivisionByZero) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}
