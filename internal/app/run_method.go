package app

// RunMethodKind is the closed set of ways rta ends up invoking a cataloged
// application's functionality.
type RunMethodKind int

const (
	// RunThisApp means the app runs its own executable, produced by one of
	// its InstallMethods.
	RunThisApp RunMethodKind = iota
	// RunOtherAppOtherExecutable means this app's functionality is really
	// another app's executable with a different name living in its yard
	// (e.g. npx runs node's "npx" sibling binary).
	RunOtherAppOtherExecutable
	// RunOtherAppDefaultExecutable means this app's functionality is
	// another app's default executable invoked with extra leading
	// arguments (e.g. npm runs "node ../lib/node_modules/npm/bin/npm-cli.js").
	RunOtherAppDefaultExecutable
)

// RunMethod describes how invoking an application actually launches code.
// It is one of three closed variants distinguished by Kind.
type RunMethod struct {
	Kind RunMethodKind

	// InstallMethods is populated when Kind == RunThisApp: the ordered
	// list of strategies to try to materialize this app's own executable.
	InstallMethods []InstallMethod

	// CarrierApp is populated when Kind is RunOtherAppOtherExecutable or
	// RunOtherAppDefaultExecutable: the app whose yard entry actually
	// supplies the executable.
	CarrierApp string

	// OtherExecutable is populated when Kind == RunOtherAppOtherExecutable:
	// the name of the sibling executable within CarrierApp's yard folder.
	OtherExecutable ExecutableName

	// Args is populated when Kind == RunOtherAppDefaultExecutable: extra
	// leading arguments placed before the user's own arguments when
	// invoking CarrierApp's default executable. Slash-separated relative
	// paths here are resolved against the carrier executable's directory
	// by the resolver.
	Args []string
}

// ThisApp is the RunMethod for an app that installs and runs its own
// executable via the given install methods, tried in order.
func ThisApp(methods ...InstallMethod) RunMethod {
	return RunMethod{Kind: RunThisApp, InstallMethods: methods}
}

// OtherAppOtherExecutable is the RunMethod for an app whose executable is a
// differently-named sibling binary living in carrierApp's yard folder.
func OtherAppOtherExecutable(carrierApp string, executable ExecutableName) RunMethod {
	return RunMethod{Kind: RunOtherAppOtherExecutable, CarrierApp: carrierApp, OtherExecutable: executable}
}

// OtherAppDefaultExecutable is the RunMethod for an app that is really
// carrierApp's default executable invoked with the given leading arguments.
func OtherAppDefaultExecutable(carrierApp string, args ...string) RunMethod {
	return RunMethod{Kind: RunOtherAppDefaultExecutable, CarrierApp: carrierApp, Args: args}
}
