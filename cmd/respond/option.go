package respond

// Options declares the CLI surface; go-flags reads the struct tags.
type Options struct {
	Config  string  `short:"f" long:"config" description:"client config YAML/JSON path"`
	Version bool    `short:"v" long:"version" description:"print version and exit"`
	Run     *RunCmd `command:"run" description:"Create a response and stream it to stdout"`
	Get     *GetCmd `command:"get" description:"Resume streaming an existing response"`
}

// Init allocates the sub-command named by the first argument ahead of
// parsing, leaving the others nil so only one command is registered.
func (o *Options) Init(firstArg string) {
	switch firstArg {
	case "run":
		o.Run = &RunCmd{}
	case "get":
		o.Get = &GetCmd{}
	}
}
