package main

import (
	"github.com/lookandhate/ArmoredWarfareAPI/cmd/awstats/commands"
	"github.com/lookandhate/ArmoredWarfareAPI/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
