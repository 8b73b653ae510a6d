package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/taicc/nets"
)

type Module struct {
	dscope.Module
	Nets nets.Module
}
