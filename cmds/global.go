package cmds

var GlobalExecutor = NewExecutor()

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

func Execute(args []string) error {
	return GlobalExecutor.Execute(args)
}

func Positional() *[]string {
	return GlobalExecutor.Positional()
}

func PrintUsage() {
	GlobalExecutor.PrintUsage()
}
