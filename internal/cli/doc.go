// Parses flags and dispatches dockhand subcommands.
//
// The binary serves both sides of the daemon protocol: 'start' runs the
// daemon, while 'build', 'up', 'status', and 'shutdown' are clients talking
// to it over the Unix socket.
//
// Global flags:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Enable verbose output.
//	-d, --debug     Enable debug output.
//	-s, --socket    Unix socket path.
//
// Flags override build-time defaults set via linker flags. After parsing, the
// global logger is reconfigured to reflect the final level before the
// selected command runs.
package cli
