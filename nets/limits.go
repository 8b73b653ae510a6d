package nets

import (
	"runtime"

	"github.com/reusee/taicc/configs"
)

// MaxConns bounds accepted connections.
type MaxConns int

func (Module) MaxConns(
	loader configs.Loader,
) MaxConns {
	if n := configs.First[int](loader, "max_conns"); n > 0 {
		return MaxConns(n)
	}
	return 256
}

// MaxCompilations bounds compilations running at the same time.
type MaxCompilations int

func (Module) MaxCompilations(
	loader configs.Loader,
) MaxCompilations {
	if n := configs.First[int](loader, "max_compilations"); n > 0 {
		return MaxCompilations(n)
	}
	return MaxCompilations(runtime.NumCPU())
}
