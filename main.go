package main

import (
	"go.uber.org/zap"

	"github.com/pmkol/midlist/coremain"
	"github.com/pmkol/midlist/mlog"
)

func main() {
	if err := coremain.Run(); err != nil {
		mlog.L().Fatal("midlist exited", zap.Error(err))
	}
}
