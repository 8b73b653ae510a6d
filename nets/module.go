package nets

import (
	"github.com/reusee/dscope"
	"github.com/reusee/taicc/drivers"
)

type Module struct {
	dscope.Module
	Drivers drivers.Module
}
