package nets

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/taicc/logs"
	"github.com/reusee/taicc/modes"
)

func newScope(t *testing.T) dscope.Scope {
	return dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		dscope.Provide(logs.Writer(new(bytes.Buffer))),
	)
}

func post(t *testing.T, handler http.Handler, path string, body string) (int, string) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w.Code, w.Body.String()
}

func TestHandler(t *testing.T) {
	newScope(t).Call(func(
		handler Handler,
	) {
		code, body := post(t, handler, "/eval", "5*(9-6)")
		if code != http.StatusOK {
			t.Fatalf("got %d %s", code, body)
		}
		if body != "15\n" {
			t.Fatalf("got %q", body)
		}

		code, body = post(t, handler, "/compile", "-10+20")
		if code != http.StatusOK {
			t.Fatalf("got %d %s", code, body)
		}
		if !strings.Contains(body, "\n.globl main\nmain:\n") {
			t.Fatalf("got %s", body)
		}
		if !strings.HasSuffix(body, "  ret\n") {
			t.Fatalf("got %s", body)
		}

		code, body = post(t, handler, "/compile?target=ir", "1")
		if code != http.StatusOK {
			t.Fatalf("got %d %s", code, body)
		}
		if body != ".entry main\n  push 1\n  pop A\n  ret\n" {
			t.Fatalf("got %q", body)
		}

		code, body = post(t, handler, "/compile?target=vax", "1")
		if code != http.StatusBadRequest {
			t.Fatalf("got %d", code)
		}
		if !strings.Contains(body, `unknown target "vax"`) {
			t.Fatalf("got %s", body)
		}

		code, body = post(t, handler, "/compile", "5+*3")
		if code != http.StatusBadRequest {
			t.Fatalf("got %d", code)
		}
		if !strings.Contains(body, "parse error") {
			t.Fatalf("got %s", body)
		}

		code, _ = post(t, handler, "/eval", "1/0")
		if code != http.StatusUnprocessableEntity {
			t.Fatalf("got %d", code)
		}

		req := httptest.NewRequest(http.MethodGet, "/eval", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusMethodNotAllowed {
			t.Fatalf("got %d", w.Code)
		}

		code, _ = post(t, handler, "/eval", strings.Repeat("1+", maxBodySize))
		if code != http.StatusRequestEntityTooLarge {
			t.Fatalf("got %d", code)
		}
	})
}

func TestListen(t *testing.T) {
	newScope(t).Call(func(
		listen Listen,
	) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatal(err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() {
			errCh <- listen(ctx, ln)
		}()

		resp, err := http.Post("http://"+ln.Addr().String()+"/eval", "text/plain", strings.NewReader("(3+5)/2"))
		if err != nil {
			t.Fatal(err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatal(err)
		}
		if string(body) != "4\n" {
			t.Fatalf("got %q", body)
		}

		cancel()
		select {
		case err := <-errCh:
			if err != nil {
				t.Fatal(err)
			}
		case <-time.After(time.Second * 10):
			t.Fatal("not stopped")
		}
	})
}

func TestIsLocalAddr(t *testing.T) {
	newScope(t).Call(func(
		isLocalAddr IsLocalAddr,
	) {
		for addr, expected := range map[string]bool{
			"127.0.0.1:10000": true,
			"[::1]:80":        true,
			"192.168.1.1":     true,
			"8.8.8.8:53":      false,
			":8080":           false,
		} {
			yes, err := isLocalAddr(addr)
			if err != nil {
				t.Fatal(err)
			}
			if yes != expected {
				t.Fatalf("%s: got %v", addr, yes)
			}
		}
	})
}
