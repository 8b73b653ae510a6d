package drivers

import (
	"github.com/reusee/dscope"
	"github.com/reusee/taicc/configs"
	"github.com/reusee/taicc/debugs"
	"github.com/reusee/taicc/logs"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Debugs  debugs.Module
	Logs    logs.Module
}
